package prompt

import (
	"math"
	"strconv"
	"strings"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

// Deterministic defaults used when a suggested value is missing or unusable.
const (
	defaultTextAnswer     = "Keep it simple and user-friendly"
	defaultTextareaAnswer = "Focus on a clean, reliable core experience that solves the main problem well"
	defaultNumberAnswer   = float64(1)
)

// coerceAnswer forces a raw suggested value into the shape the question
// declares. It never fails: anything unusable is replaced by the per-type
// default, so a suggestion always comes back well-shaped. Passing nil yields
// the defaults themselves.
func coerceAnswer(q *entity.Question, raw any) entity.AnswerValue {
	switch q.Type {
	case entity.QuestionTypeSingleSelect:
		return coerceSingleSelect(q, raw)
	case entity.QuestionTypeMultiSelect:
		return coerceMultiSelect(q, raw)
	case entity.QuestionTypeBoolean:
		return entity.BoolAnswer(coerceBool(raw))
	case entity.QuestionTypeNumber:
		return entity.NumberAnswer(coerceNumber(raw))
	case entity.QuestionTypeTextarea:
		return entity.StringAnswer(coerceText(raw, defaultTextareaAnswer))
	default:
		return entity.StringAnswer(coerceText(raw, defaultTextAnswer))
	}
}

func coerceSingleSelect(q *entity.Question, raw any) entity.AnswerValue {
	if s, ok := raw.(string); ok {
		for _, choice := range q.Choices {
			if s == choice {
				return entity.StringAnswer(s)
			}
		}
	}
	if len(q.Choices) == 0 {
		return entity.StringAnswer("")
	}
	return entity.StringAnswer(q.Choices[0])
}

func coerceMultiSelect(q *entity.Question, raw any) entity.AnswerValue {
	allowed := make(map[string]struct{}, len(q.Choices))
	for _, choice := range q.Choices {
		allowed[choice] = struct{}{}
	}

	var kept []string
	if items, ok := raw.([]any); ok {
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if _, ok := allowed[s]; ok {
				kept = append(kept, s)
			}
		}
	}

	if len(kept) == 0 && len(q.Choices) > 0 {
		kept = append(kept, q.Choices[:min(2, len(q.Choices))]...)
	}

	return entity.ListAnswer(kept)
}

// coerceBool mirrors dynamic-language truthiness: zero and empty values are
// false, anything substantial is true, and no value at all means yes.
func coerceBool(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func coerceNumber(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return n
		}
	}
	return defaultNumberAnswer
}

func coerceText(raw any, fallback string) string {
	if s, ok := raw.(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

package handlers

import (
	"strconv"
	"strings"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

// parseTypedAnswer turns a typed chat reply into an answer value shaped
// for the question type. Input that doesn't parse is kept as typed; the
// answer set is pass-through data, not something to reject.
func parseTypedAnswer(q *entity.Question, text string) any {
	trimmed := strings.TrimSpace(text)

	switch q.Type {
	case entity.QuestionTypeBoolean:
		return parseBoolReply(trimmed)
	case entity.QuestionTypeNumber:
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return n
		}
		return trimmed
	case entity.QuestionTypeSingleSelect:
		if choice, ok := matchChoice(q.Choices, trimmed); ok {
			return choice
		}
		return trimmed
	case entity.QuestionTypeMultiSelect:
		return parseMultiReply(q.Choices, trimmed)
	default:
		return trimmed
	}
}

// parseBoolReply understands the usual ways people type yes and no. Any
// other reply counts as agreement, matching how absent boolean answers
// default.
func parseBoolReply(text string) any {
	switch strings.ToLower(text) {
	case "yes", "y", "yep", "yeah", "sure", "true", "ok":
		return true
	case "no", "n", "nope", "false":
		return false
	default:
		return true
	}
}

// parseMultiReply splits a comma-separated reply and maps each part onto a
// choice by name or 1-based number. Parts that match nothing are kept as
// typed.
func parseMultiReply(choices []string, text string) []string {
	parts := strings.Split(text, ",")
	selected := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if choice, ok := matchChoice(choices, part); ok {
			selected = append(selected, choice)
			continue
		}
		selected = append(selected, part)
	}

	return selected
}

// matchChoice resolves text to a canonical choice, by case-insensitive
// name or by 1-based position.
func matchChoice(choices []string, text string) (string, bool) {
	for _, choice := range choices {
		if strings.EqualFold(choice, text) {
			return choice, true
		}
	}

	if idx, err := strconv.Atoi(text); err == nil && idx >= 1 && idx <= len(choices) {
		return choices[idx-1], true
	}

	return "", false
}

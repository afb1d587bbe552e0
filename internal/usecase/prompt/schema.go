package prompt

import (
	"fmt"
	"strings"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

// questionSetFromPayload builds the typed question set from an extracted model
// payload. Validation is all-or-nothing: the first violated invariant rejects
// the whole batch, so a partially valid set never reaches a client. Question
// order is preserved exactly as the model produced it.
func questionSetFromPayload(payload map[string]any) ([]entity.Question, error) {
	rawList, ok := payload["questions"].([]any)
	if !ok || len(rawList) == 0 {
		return nil, fmt.Errorf("%w: missing or empty questions array", entity.ErrBadQuestionPayload)
	}

	questions := make([]entity.Question, 0, len(rawList))
	for i, item := range rawList {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is not an object", entity.ErrBadQuestionPayload, i)
		}

		q, err := questionFromObject(obj)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		questions = append(questions, *q)
	}

	return questions, nil
}

func questionFromObject(obj map[string]any) (*entity.Question, error) {
	q := &entity.Question{
		ID:       stringField(obj, "id"),
		Type:     entity.QuestionType(stringField(obj, "type")),
		Question: stringField(obj, "question"),
	}

	if required, ok := obj["required"].(bool); ok {
		q.Required = required
	}

	if placeholder, ok := obj["placeholder"].(string); ok {
		q.Placeholder = &placeholder
	}

	if rawChoices, ok := obj["choices"].([]any); ok {
		choices := make([]string, 0, len(rawChoices))
		for _, c := range rawChoices {
			s, ok := c.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string choice", entity.ErrBadQuestionPayload)
			}
			choices = append(choices, s)
		}
		q.Choices = choices
	}

	// Meaningless fields are stripped, not rejected; everything else is.
	q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if q.Placeholder != nil && !strings.HasPrefix(*q.Placeholder, entity.PlaceholderMarker) {
		return nil, fmt.Errorf("%w: question %q", entity.ErrBadPlaceholder, q.ID)
	}

	return q, nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

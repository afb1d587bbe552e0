package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptcraft/promptcraft-backend/internal/config"
	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

func testValidator() *Validator {
	return NewRequestValidator(config.RequestLimitsConfig{
		MaxIdeaChars:   100,
		MaxPromptChars: 200,
		MaxAnswers:     3,
	})
}

func TestValidateIdea(t *testing.T) {
	v := testValidator()

	tests := []struct {
		name    string
		idea    entity.Idea
		wantErr error
	}{
		{
			name: "valid idea",
			idea: entity.Idea{Category: entity.CategorySoftwareBuild, Description: "a habit tracker"},
		},
		{
			name: "unknown category is not an error",
			idea: entity.Idea{Category: "whatever", Description: "a habit tracker"},
		},
		{
			name:    "empty description",
			idea:    entity.Idea{Description: ""},
			wantErr: entity.ErrMissingField,
		},
		{
			name:    "whitespace description",
			idea:    entity.Idea{Description: "   \n\t"},
			wantErr: entity.ErrMissingField,
		},
		{
			name:    "too short after trimming",
			idea:    entity.Idea{Description: " ab "},
			wantErr: entity.ErrIdeaTooShort,
		},
		{
			name:    "too long",
			idea:    entity.Idea{Description: strings.Repeat("x", 101)},
			wantErr: entity.ErrIdeaTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateIdea(&tt.idea)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateIdea_CountsRunesNotBytes(t *testing.T) {
	v := testValidator()

	// 100 multibyte runes are within the 100-char limit even though the
	// byte count is far above it.
	idea := entity.Idea{Description: strings.Repeat("ä", 100)}
	assert.NoError(t, v.ValidateIdea(&idea))

	idea.Description = strings.Repeat("ä", 101)
	assert.ErrorIs(t, v.ValidateIdea(&idea), entity.ErrIdeaTooLong)
}

func TestValidatePromptRequest(t *testing.T) {
	v := testValidator()

	tests := []struct {
		name    string
		req     entity.PromptRequest
		wantErr error
	}{
		{
			name: "valid request",
			req: entity.PromptRequest{
				Idea:    "a habit tracker",
				Answers: map[string]any{"platform": "Web"},
			},
		},
		{
			name: "no answers is fine",
			req:  entity.PromptRequest{Idea: "a habit tracker"},
		},
		{
			name:    "empty idea",
			req:     entity.PromptRequest{Idea: "  "},
			wantErr: entity.ErrMissingField,
		},
		{
			name:    "idea too long",
			req:     entity.PromptRequest{Idea: strings.Repeat("x", 101)},
			wantErr: entity.ErrIdeaTooLong,
		},
		{
			name: "too many answers",
			req: entity.PromptRequest{
				Idea:    "a habit tracker",
				Answers: map[string]any{"a": 1, "b": 2, "c": 3, "d": 4},
			},
			wantErr: entity.ErrTooManyAnswers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePromptRequest(&tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSuggestAnswer(t *testing.T) {
	v := testValidator()

	validQuestion := entity.Question{
		ID:       "platform",
		Type:     entity.QuestionTypeSingleSelect,
		Question: "Which platform?",
		Choices:  []string{"Web", "Mobile"},
	}

	t.Run("valid request", func(t *testing.T) {
		req := entity.SuggestAnswerRequest{Idea: "a habit tracker", Question: validQuestion}
		assert.NoError(t, v.ValidateSuggestAnswer(&req))
	})

	t.Run("question is normalized in place", func(t *testing.T) {
		placeholder := "e.g., yes"
		req := entity.SuggestAnswerRequest{
			Idea: "a habit tracker",
			Question: entity.Question{
				ID: "cloud", Type: entity.QuestionTypeBoolean, Question: "Cloud?",
				Choices: []string{"Yes", "No"}, Placeholder: &placeholder,
			},
		}

		require.NoError(t, v.ValidateSuggestAnswer(&req))
		assert.Nil(t, req.Question.Choices)
		assert.Nil(t, req.Question.Placeholder)
	})

	t.Run("empty idea", func(t *testing.T) {
		req := entity.SuggestAnswerRequest{Idea: "", Question: validQuestion}
		assert.ErrorIs(t, v.ValidateSuggestAnswer(&req), entity.ErrMissingField)
	})

	t.Run("too many current answers", func(t *testing.T) {
		req := entity.SuggestAnswerRequest{
			Idea:           "a habit tracker",
			Question:       validQuestion,
			CurrentAnswers: map[string]any{"a": 1, "b": 2, "c": 3, "d": 4},
		}
		assert.ErrorIs(t, v.ValidateSuggestAnswer(&req), entity.ErrTooManyAnswers)
	})

	t.Run("invalid embedded question", func(t *testing.T) {
		req := entity.SuggestAnswerRequest{
			Idea:     "a habit tracker",
			Question: entity.Question{ID: "x", Type: "dropdown", Question: "X?"},
		}
		assert.ErrorIs(t, v.ValidateSuggestAnswer(&req), entity.ErrUnknownQuestionType)
	})

	t.Run("select question stripped below two choices stays invalid", func(t *testing.T) {
		req := entity.SuggestAnswerRequest{
			Idea:     "a habit tracker",
			Question: entity.Question{ID: "x", Type: entity.QuestionTypeSingleSelect, Question: "X?", Choices: []string{"only"}},
		}
		assert.ErrorIs(t, v.ValidateSuggestAnswer(&req), entity.ErrNotEnoughChoices)
	})
}

func TestValidateExportPrompt(t *testing.T) {
	v := testValidator()

	tests := []struct {
		name    string
		req     entity.ExportPromptRequest
		format  entity.ExportFormat
		wantErr error
	}{
		{
			name:   "valid markdown export",
			req:    entity.ExportPromptRequest{Prompt: "Build a habit tracker."},
			format: entity.ExportFormatMarkdown,
		},
		{
			name:   "valid pdf export with title",
			req:    entity.ExportPromptRequest{Title: "My Prompt", Prompt: "Build a habit tracker."},
			format: entity.ExportFormatPDF,
		},
		{
			name:    "empty prompt",
			req:     entity.ExportPromptRequest{Prompt: "  "},
			format:  entity.ExportFormatMarkdown,
			wantErr: entity.ErrMissingField,
		},
		{
			name:    "prompt too long",
			req:     entity.ExportPromptRequest{Prompt: strings.Repeat("x", 201)},
			format:  entity.ExportFormatMarkdown,
			wantErr: entity.ErrPromptTooLong,
		},
		{
			name:    "unsupported format",
			req:     entity.ExportPromptRequest{Prompt: "Build a habit tracker."},
			format:  entity.ExportFormat("html"),
			wantErr: entity.ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateExportPrompt(&tt.req, tt.format)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

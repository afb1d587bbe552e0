package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/promptcraft/promptcraft-backend/internal/config"
	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

// MinIdeaChars is the shortest idea description worth asking questions about.
const MinIdeaChars = 3

// Validator checks incoming request payloads against configured limits.
// Categories are not validated here: unknown categories normalize to the
// default further down, they are never a client error.
type Validator struct {
	cfg config.RequestLimitsConfig
}

func NewRequestValidator(cfg config.RequestLimitsConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateIdea checks the question-generation payload.
func (v *Validator) ValidateIdea(req *entity.Idea) error {
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return fmt.Errorf("%w: description", entity.ErrMissingField)
	}
	if utf8.RuneCountInString(desc) < MinIdeaChars {
		return fmt.Errorf("%w: need at least %d characters", entity.ErrIdeaTooShort, MinIdeaChars)
	}
	if utf8.RuneCountInString(req.Description) > v.cfg.MaxIdeaChars {
		return fmt.Errorf("%w: maximum %d characters", entity.ErrIdeaTooLong, v.cfg.MaxIdeaChars)
	}

	return nil
}

// ValidatePromptRequest checks the prompt-synthesis payload. Answer values
// themselves are passed through untouched, only their count is bounded.
func (v *Validator) ValidatePromptRequest(req *entity.PromptRequest) error {
	if strings.TrimSpace(req.Idea) == "" {
		return fmt.Errorf("%w: idea", entity.ErrMissingField)
	}
	if utf8.RuneCountInString(req.Idea) > v.cfg.MaxIdeaChars {
		return fmt.Errorf("%w: maximum %d characters", entity.ErrIdeaTooLong, v.cfg.MaxIdeaChars)
	}
	if len(req.Answers) > v.cfg.MaxAnswers {
		return fmt.Errorf("%w: maximum %d answers, got %d", entity.ErrTooManyAnswers, v.cfg.MaxAnswers, len(req.Answers))
	}

	return nil
}

// ValidateSuggestAnswer checks the answer-suggest payload. The embedded
// question is normalized in place and must then hold the construction
// invariants, exactly as if the model had produced it.
func (v *Validator) ValidateSuggestAnswer(req *entity.SuggestAnswerRequest) error {
	if strings.TrimSpace(req.Idea) == "" {
		return fmt.Errorf("%w: idea", entity.ErrMissingField)
	}
	if len(req.CurrentAnswers) > v.cfg.MaxAnswers {
		return fmt.Errorf("%w: maximum %d answers, got %d", entity.ErrTooManyAnswers, v.cfg.MaxAnswers, len(req.CurrentAnswers))
	}

	req.Question.Normalize()
	return req.Question.Validate()
}

// ValidateExportPrompt checks the export payload and target format.
func (v *Validator) ValidateExportPrompt(req *entity.ExportPromptRequest, format entity.ExportFormat) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return fmt.Errorf("%w: prompt", entity.ErrMissingField)
	}
	if utf8.RuneCountInString(req.Prompt) > v.cfg.MaxPromptChars {
		return fmt.Errorf("%w: maximum %d characters", entity.ErrPromptTooLong, v.cfg.MaxPromptChars)
	}

	return format.Validate()
}

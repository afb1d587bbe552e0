package entity

import (
	"fmt"
	"strings"
)

type IdeaCategory string

// Idea categories select the lens the model is instructed through
const (
	CategorySoftwareBuild IdeaCategory = "software_build" // default: turning an app idea into a build prompt
	CategoryAcademic      IdeaCategory = "academic"       // research and academic writing projects
	CategoryGeneral       IdeaCategory = "general"        // everything else
)

// Normalize maps empty or unknown categories onto the default build category.
func (c IdeaCategory) Normalize() IdeaCategory {
	switch c {
	case CategorySoftwareBuild, CategoryAcademic, CategoryGeneral:
		return c
	default:
		return CategorySoftwareBuild
	}
}

type QuestionType string

const (
	QuestionTypeText         QuestionType = "text"
	QuestionTypeTextarea     QuestionType = "textarea"
	QuestionTypeSingleSelect QuestionType = "single_select"
	QuestionTypeMultiSelect  QuestionType = "multi_select"
	QuestionTypeBoolean      QuestionType = "boolean"
	QuestionTypeNumber       QuestionType = "number"
)

func (qt QuestionType) Validate() error {
	switch qt {
	case QuestionTypeText, QuestionTypeTextarea, QuestionTypeSingleSelect,
		QuestionTypeMultiSelect, QuestionTypeBoolean, QuestionTypeNumber:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownQuestionType, qt)
	}
}

// IsSelect reports whether answers to this type are constrained to the
// question's choices.
func (qt QuestionType) IsSelect() bool {
	return qt == QuestionTypeSingleSelect || qt == QuestionTypeMultiSelect
}

// IsTextInput reports whether the type renders as a free text input and
// may therefore carry a placeholder.
func (qt QuestionType) IsTextInput() bool {
	return qt == QuestionTypeText || qt == QuestionTypeTextarea
}

// PlaceholderMarker is the literal prefix every model-produced placeholder
// must start with.
const PlaceholderMarker = "e.g.,"

// Question is a single typed clarification question shown to the user.
// Placeholder is null unless the question is a text input; Choices is null
// unless the question is a select.
type Question struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Question    string       `json:"question"`
	Required    bool         `json:"required"`
	Placeholder *string      `json:"placeholder"`
	Choices     []string     `json:"choices"`
}

// Normalize strips fields that carry no meaning for the question's type:
// choices outside selects, placeholders outside text inputs.
func (q *Question) Normalize() {
	if !q.Type.IsSelect() {
		q.Choices = nil
	}
	if !q.Type.IsTextInput() {
		q.Placeholder = nil
	}
}

// Validate checks the invariants every constructed question must hold,
// regardless of who produced it.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("%w: question id", ErrMissingField)
	}
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: question text", ErrMissingField)
	}
	if err := q.Type.Validate(); err != nil {
		return err
	}
	if q.Type.IsSelect() && countDistinct(q.Choices) < 2 {
		return fmt.Errorf("%w: question %q", ErrNotEnoughChoices, q.ID)
	}
	return nil
}

func countDistinct(items []string) int {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		seen[it] = struct{}{}
	}
	return len(seen)
}

// Idea is the unstructured project description a prompt is built from.
type Idea struct {
	Category    IdeaCategory `json:"category"`
	Description string       `json:"description"`
}

type GenerateQuestionsResult struct {
	Questions []Question `json:"questions"`
}

// PromptRequest carries the idea together with the user's answers keyed by
// question id. Answer values are opaque here: they are rendered into the
// final prompt verbatim, never validated or reshaped.
type PromptRequest struct {
	Category IdeaCategory   `json:"category"`
	Idea     string         `json:"idea"`
	Answers  map[string]any `json:"answers"`
}

type GeneratePromptResult struct {
	Prompt string `json:"prompt"`
}

// SuggestAnswerRequest asks for a model-suggested answer to one question.
// The embedded question must satisfy the usual construction invariants.
type SuggestAnswerRequest struct {
	Category       IdeaCategory   `json:"category"`
	Idea           string         `json:"idea"`
	Question       Question       `json:"question"`
	CurrentAnswers map[string]any `json:"current_answers"`
}

type SuggestAnswerResult struct {
	ID    string       `json:"id"`
	Type  QuestionType `json:"type"`
	Value AnswerValue  `json:"value"`
}

type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatPDF      ExportFormat = "pdf"
	ExportFormatDocx     ExportFormat = "docx"
)

func (f ExportFormat) Validate() error {
	switch f {
	case ExportFormatMarkdown, ExportFormatPDF, ExportFormatDocx:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// ExportPromptRequest carries an already generated prompt to render as a
// downloadable document.
type ExportPromptRequest struct {
	Title  string `json:"title,omitempty"`
	Prompt string `json:"prompt"`
}

// ServiceInfo is the root endpoint payload.
type ServiceInfo struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	DevMode bool   `json:"dev_mode"`
}

package entity

import "errors"

// Domain errors
var (
	// Request validation errors
	ErrMissingField        = errors.New("required field is missing")
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrIdeaTooShort        = errors.New("idea description is too short")
	ErrIdeaTooLong         = errors.New("idea description is too long")
	ErrPromptTooLong       = errors.New("prompt text is too long")
	ErrTooManyAnswers      = errors.New("too many answers")
	ErrUnknownQuestionType = errors.New("unknown question type")
	ErrNotEnoughChoices    = errors.New("select question needs at least two distinct choices")
	ErrUnsupportedFormat   = errors.New("unsupported export format")

	// Model output errors
	ErrNoJSONPayload      = errors.New("no JSON object in model output")
	ErrBadQuestionPayload = errors.New("malformed question payload")
	ErrBadPlaceholder     = errors.New("placeholder does not start with the example marker")

	// Upstream errors
	ErrUpstreamNotConfigured = errors.New("model upstream is not configured")
	ErrEmptyCompletion       = errors.New("model returned an empty completion")
)

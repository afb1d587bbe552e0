package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

func TestRenderQuestion_SingleSelect(t *testing.T) {
	q := &entity.Question{
		ID:       "platform",
		Type:     entity.QuestionTypeSingleSelect,
		Question: "Which platform?",
		Required: true,
		Choices:  []string{"Web", "Mobile"},
	}

	got := RenderQuestion(q, 1, 6)

	assert.Contains(t, got, "Question 1 of 6")
	assert.Contains(t, got, "Which platform?")
	assert.Contains(t, got, "Tap a choice below")
	assert.NotContains(t, got, "This one is optional.")
}

func TestRenderQuestion_MultiSelectListsChoices(t *testing.T) {
	q := &entity.Question{
		ID:       "features",
		Type:     entity.QuestionTypeMultiSelect,
		Question: "Which features?",
		Choices:  []string{"Auth", "Search", "Offline"},
	}

	got := RenderQuestion(q, 3, 6)

	assert.Contains(t, got, "1. Auth\n")
	assert.Contains(t, got, "2. Search\n")
	assert.Contains(t, got, "3. Offline\n")
	assert.Contains(t, got, "separated by commas")
	assert.Contains(t, got, "This one is optional.")
}

func TestRenderQuestion_TypeHints(t *testing.T) {
	placeholder := "e.g., busy professionals"

	tests := []struct {
		name string
		q    entity.Question
		want string
	}{
		{
			name: "boolean",
			q:    entity.Question{ID: "q", Type: entity.QuestionTypeBoolean, Question: "Cloud?"},
			want: "Tap Yes or No",
		},
		{
			name: "number",
			q:    entity.Question{ID: "q", Type: entity.QuestionTypeNumber, Question: "How many?"},
			want: "Reply with a number.",
		},
		{
			name: "text with placeholder",
			q:    entity.Question{ID: "q", Type: entity.QuestionTypeText, Question: "Who?", Placeholder: &placeholder},
			want: "(e.g., busy professionals)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, RenderQuestion(&tt.q, 1, 1), tt.want)
		})
	}
}

func TestRenderQuestion_ProgressBar(t *testing.T) {
	q := &entity.Question{ID: "q", Type: entity.QuestionTypeText, Question: "Q?", Required: true}

	// First of four: nothing answered yet.
	assert.Contains(t, RenderQuestion(q, 1, 4), "[░░░░░░░░░░]")
	// Third of four: half done.
	assert.Contains(t, RenderQuestion(q, 3, 4), "[▓▓▓▓▓░░░░░]")
}

func TestFormatAnswer(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil shows a dash", nil, "—"},
		{"empty string shows a dash", "", "—"},
		{"string", "Web", "Web"},
		{"true", true, "Yes"},
		{"false", false, "No"},
		{"whole number", float64(3), "3"},
		{"fractional number", 2.5, "2.5"},
		{"string list", []string{"Auth", "Search"}, "Auth, Search"},
		{"empty string list shows a dash", []string{}, "—"},
		{"mixed list", []any{"Auth", true}, "Auth, Yes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAnswer(tt.in))
		})
	}
}

func TestRenderAcks(t *testing.T) {
	assert.Equal(t, "✔️ Web", RenderAnswerAck("Web"))
	assert.Equal(t, "✔️ Yes", RenderAnswerAck(true))
	assert.Equal(t, "💡 Suggested: Auth, Search", RenderSuggested([]string{"Auth", "Search"}))
}

type fakeNetError struct {
	timeout bool
}

func (e *fakeNetError) Error() string   { return "fake net error" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ErrGeneric},
		{"deadline exceeded", context.DeadlineExceeded, ErrTimeout},
		{"cancelled", context.Canceled, ErrTimeout},
		{"wrapped deadline", fmt.Errorf("send: %w", context.DeadlineExceeded), ErrTimeout},
		{"net timeout", &fakeNetError{timeout: true}, ErrTimeout},
		{"net failure", &fakeNetError{}, ErrNetworkIssue},
		{"connection refused text", errors.New("dial tcp: connection refused"), ErrServiceUnavailable},
		{"timeout text", errors.New("client timeout exceeded"), ErrTimeout},
		{"network text", errors.New("network is unreachable"), ErrNetworkIssue},
		{"unavailable text", errors.New("service unavailable"), ErrServiceUnavailable},
		{"anything else", errors.New("boom"), ErrGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

func TestRecoveryMessagesNameTheCommand(t *testing.T) {
	// Dead-end messages must tell the user how to get going again.
	assert.Contains(t, MsgConversationDiscarded, "/start")
	assert.Contains(t, MsgNoConversation, "/start")
	assert.Contains(t, MsgUseButtons, "/start")
	assert.True(t, strings.HasPrefix(MsgCancelConfirm, "⚠️"))
}

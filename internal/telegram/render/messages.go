package render

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

const (
	// Welcome and flow messages
	MsgWelcome = `👋 Hi! I turn rough ideas into polished, ready-to-use AI prompts.

Tell me what you want to build, answer a few quick questions, and I'll write the prompt for you.`

	MsgChooseCategory = `📂 What kind of project is it?`

	MsgAskIdea = `💬 Great. Now describe your idea in a sentence or two.

Don't worry about details, the questions come next.`

	MsgPreparingQuestions = `🤔 Let me think of the right questions...`

	MsgGenerating = `⏳ Putting your prompt together...`

	MsgPromptReady = `✅ Your prompt is ready. Copy it from the message above or download it as a file:`

	MsgConversationDiscarded = `👋 Conversation discarded.

Start a new one with /start`

	MsgCancelConfirm = `⚠️ Are you sure? Your answers so far will be lost.`

	MsgNoConversation = `There's nothing in progress. Start with /start`

	MsgUseButtons = `Please use the buttons above, or /start to begin again.`

	MsgIdeaTooShort = `That's a bit too short. Give me at least a few words about your idea.`

	// Errors
	ErrGeneric            = `❌ Something went wrong. Try again or hit /start`
	ErrNetworkIssue       = `❌ Connection trouble. Please try again in a moment.`
	ErrTimeout            = `❌ That took too long. Please try again.`
	ErrServiceUnavailable = `❌ The service is temporarily unavailable. Try again in a couple of minutes.`
)

// RenderQuestion formats one question with its progress position and the
// input hint matching the question type.
func RenderQuestion(q *entity.Question, number, total int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "❓ Question %d of %d %s\n\n%s", number, total, renderProgressBar(number-1, total), q.Question)

	switch q.Type {
	case entity.QuestionTypeSingleSelect:
		sb.WriteString("\n\nTap a choice below, or type your own answer.")
	case entity.QuestionTypeMultiSelect:
		sb.WriteString("\n\n")
		for i, choice := range q.Choices {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, choice)
		}
		sb.WriteString("\nReply with the options you want, separated by commas. Numbers work too.")
	case entity.QuestionTypeBoolean:
		sb.WriteString("\n\nTap Yes or No below, or just type it.")
	case entity.QuestionTypeNumber:
		sb.WriteString("\n\nReply with a number.")
	default:
		if q.Placeholder != nil && *q.Placeholder != "" {
			fmt.Fprintf(&sb, "\n\n(%s)", *q.Placeholder)
		}
	}

	if !q.Required {
		sb.WriteString("\n\nThis one is optional.")
	}

	return sb.String()
}

// RenderAnswerAck confirms a recorded answer.
func RenderAnswerAck(value any) string {
	return "✔️ " + FormatAnswer(value)
}

// RenderSuggested shows a model-suggested answer that was recorded.
func RenderSuggested(value any) string {
	return "💡 Suggested: " + FormatAnswer(value)
}

// FormatAnswer renders an answer value for chat display.
func FormatAnswer(value any) string {
	switch v := value.(type) {
	case nil:
		return "—"
	case string:
		if v == "" {
			return "—"
		}
		return v
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		if len(v) == 0 {
			return "—"
		}
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, FormatAnswer(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// renderProgressBar creates a visual progress bar over answered questions.
func renderProgressBar(done, total int) string {
	if total <= 0 {
		return ""
	}

	percent := float64(done) / float64(total)
	filled := int(percent * 10)

	return "[" + strings.Repeat("▓", filled) + strings.Repeat("░", 10-filled) + "]"
}

// ClassifyError maps an error onto a user-friendly chat message.
func ClassifyError(err error) string {
	if err == nil {
		return ErrGeneric
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetworkIssue
	}

	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "connection refused"):
		return ErrServiceUnavailable
	case strings.Contains(errMsg, "timeout"):
		return ErrTimeout
	case strings.Contains(errMsg, "network"):
		return ErrNetworkIssue
	case strings.Contains(errMsg, "unavailable"):
		return ErrServiceUnavailable
	}

	return ErrGeneric
}

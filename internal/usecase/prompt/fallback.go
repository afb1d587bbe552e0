package prompt

import (
	"fmt"
	"slices"
	"strings"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

// serviceUnavailablePrompt is what production users get instead of a prompt
// when the model cannot be reached. Deliberately content-free: no idea echo,
// no half-generated text.
const serviceUnavailablePrompt = "The prompt generation service is currently unavailable. " +
	"Please check your internet connection and verify the API credentials, then try again."

// fallbackQuestions is the canned clarification set used whenever the model
// cannot supply one. Same six questions, same order, every call.
func fallbackQuestions() []entity.Question {
	return []entity.Question{
		{
			ID:       "platform",
			Type:     entity.QuestionTypeSingleSelect,
			Question: "Which platform should this be built for?",
			Required: true,
			Choices:  []string{"Web", "Mobile (iOS)", "Mobile (Android)", "Desktop", "Cross-platform"},
		},
		{
			ID:          "target_user",
			Type:        entity.QuestionTypeText,
			Question:    "Who is the primary target user?",
			Required:    true,
			Placeholder: strPtr("e.g., busy professionals who want to track their habits"),
		},
		{
			ID:       "core_features",
			Type:     entity.QuestionTypeMultiSelect,
			Question: "Which core features matter most for the first version?",
			Required: true,
			Choices: []string{
				"User accounts / login",
				"Notifications",
				"Analytics / charts",
				"Offline mode",
				"Search",
				"Social sharing",
			},
		},
		{
			ID:       "ui_style",
			Type:     entity.QuestionTypeSingleSelect,
			Question: "What should the interface feel like?",
			Required: false,
			Choices:  []string{"Minimal & clean", "Playful & colorful", "Professional & corporate", "Dark & sleek"},
		},
		{
			ID:       "data_storage",
			Type:     entity.QuestionTypeBoolean,
			Question: "Should user data be stored in the cloud?",
			Required: false,
		},
		{
			ID:          "extra_notes",
			Type:        entity.QuestionTypeTextarea,
			Question:    "Anything else the prompt should capture?",
			Required:    false,
			Placeholder: strPtr("e.g., must integrate with an existing calendar, launch before June"),
		},
	}
}

// defaultAnswerFor yields the deterministic stand-in answer for a question.
// It is exactly what coercion falls back to when a value is unusable, so the
// two can never drift apart.
func defaultAnswerFor(q *entity.Question) entity.AnswerValue {
	return coerceAnswer(q, nil)
}

// fallbackPromptText builds the no-model stand-in for a final prompt. In dev
// mode that is a clearly labeled placeholder carrying the request content
// verbatim; in production it is a plain outage notice with no prompt content.
func fallbackPromptText(req *entity.PromptRequest, devMode bool) string {
	if !devMode {
		return serviceUnavailablePrompt
	}

	var b strings.Builder
	b.WriteString("[DEV PLACEHOLDER: no model call was made]\n\n")
	fmt.Fprintf(&b, "Category: %s\n", req.Category.Normalize())
	fmt.Fprintf(&b, "Idea: %s\n", req.Idea)
	if len(req.Answers) > 0 {
		b.WriteString("Answers:\n")
		ids := make([]string, 0, len(req.Answers))
		for id := range req.Answers {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "- %s: %s\n", id, renderAnswer(req.Answers[id]))
		}
	}
	b.WriteString("\nSet GEMINI_API_KEY to generate real prompts.")

	return b.String()
}

func strPtr(s string) *string {
	return &s
}

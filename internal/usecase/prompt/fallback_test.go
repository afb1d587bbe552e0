package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

func TestFallbackQuestions(t *testing.T) {
	questions := fallbackQuestions()
	require.Len(t, questions, 6)

	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"platform", "target_user", "core_features", "ui_style", "data_storage", "extra_notes"}, ids)

	// Every canned question holds the same invariants a model-produced one must.
	for _, q := range questions {
		assert.NoError(t, q.Validate(), "question %s", q.ID)
		if q.Placeholder != nil {
			assert.True(t, strings.HasPrefix(*q.Placeholder, entity.PlaceholderMarker), "question %s", q.ID)
		}
	}

	assert.True(t, questions[0].Required)
	assert.True(t, questions[1].Required)
	assert.True(t, questions[2].Required)
	assert.False(t, questions[3].Required)
	assert.False(t, questions[4].Required)
	assert.False(t, questions[5].Required)
}

func TestFallbackQuestions_StableAcrossCalls(t *testing.T) {
	assert.Equal(t, fallbackQuestions(), fallbackQuestions())
}

func TestDefaultAnswerFor(t *testing.T) {
	tests := []struct {
		name     string
		question *entity.Question
		want     any
	}{
		{
			name:     "single select defaults to first choice",
			question: selectQuestion("Web", "Mobile"),
			want:     "Web",
		},
		{
			name:     "multi select defaults to first two choices",
			question: multiQuestion("Auth", "Search", "Offline"),
			want:     []string{"Auth", "Search"},
		},
		{
			name:     "boolean defaults to yes",
			question: typedQuestion(entity.QuestionTypeBoolean),
			want:     true,
		},
		{
			name:     "number defaults to one",
			question: typedQuestion(entity.QuestionTypeNumber),
			want:     defaultNumberAnswer,
		},
		{
			name:     "text has the short default",
			question: typedQuestion(entity.QuestionTypeText),
			want:     defaultTextAnswer,
		},
		{
			name:     "textarea has the long default",
			question: typedQuestion(entity.QuestionTypeTextarea),
			want:     defaultTextareaAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaultAnswerFor(tt.question)
			assert.Equal(t, tt.want, got.Raw())
		})
	}
}

func TestFallbackPromptText_Production(t *testing.T) {
	req := &entity.PromptRequest{
		Category: entity.CategorySoftwareBuild,
		Idea:     "a habit tracker",
		Answers:  map[string]any{"platform": "Web"},
	}

	got := fallbackPromptText(req, false)

	// Outage notice only: nothing from the request leaks into it.
	assert.Equal(t, serviceUnavailablePrompt, got)
	assert.NotContains(t, got, "habit tracker")
}

func TestFallbackPromptText_DevMode(t *testing.T) {
	req := &entity.PromptRequest{
		Category: entity.CategoryAcademic,
		Idea:     "a study on sleep and memory",
		Answers: map[string]any{
			"scope":   "undergraduate thesis",
			"methods": []any{"survey", "interviews"},
			"blinded": true,
		},
	}

	got := fallbackPromptText(req, true)

	assert.Contains(t, got, "[DEV PLACEHOLDER")
	assert.Contains(t, got, "Category: academic")
	assert.Contains(t, got, "Idea: a study on sleep and memory")
	assert.Contains(t, got, "- blinded: yes")
	assert.Contains(t, got, "- methods: survey, interviews")
	assert.Contains(t, got, "- scope: undergraduate thesis")
	assert.Contains(t, got, "GEMINI_API_KEY")

	// Answers render in sorted key order.
	assert.Less(t, strings.Index(got, "- blinded:"), strings.Index(got, "- methods:"))
	assert.Less(t, strings.Index(got, "- methods:"), strings.Index(got, "- scope:"))
}

func TestFallbackPromptText_DevModeNoAnswers(t *testing.T) {
	req := &entity.PromptRequest{Idea: "a habit tracker"}

	got := fallbackPromptText(req, true)

	assert.Contains(t, got, "Category: software_build")
	assert.NotContains(t, got, "Answers:")
}

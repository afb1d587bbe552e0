package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]any
	}{
		{
			name: "bare object",
			raw:  `{"value": "web"}`,
			want: map[string]any{"value": "web"},
		},
		{
			name: "object with surrounding whitespace",
			raw:  "\n\t  {\"value\": 3}  \n",
			want: map[string]any{"value": float64(3)},
		},
		{
			name: "markdown fenced object",
			raw:  "```json\n{\"value\": true}\n```",
			want: map[string]any{"value": true},
		},
		{
			name: "object wrapped in prose",
			raw:  `Sure! Here is the JSON you asked for: {"value": "ok"} Hope that helps.`,
			want: map[string]any{"value": "ok"},
		},
		{
			name: "nested object",
			raw:  `{"questions": [{"id": "platform"}]}`,
			want: map[string]any{"questions": []any{map[string]any{"id": "platform"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractObject(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractObject_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty completion", ""},
		{"whitespace only", "   \n\t "},
		{"no braces at all", "I could not produce any questions."},
		{"opening brace only", "here it comes {"},
		{"closing before opening", "} oops {"},
		{"garbage between braces", "{not json at all}"},
		{"bare array", `["a", "b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractObject(tt.raw)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, entity.ErrNoJSONPayload)
		})
	}
}

func TestExtractObject_OutermostBraces(t *testing.T) {
	// Two objects in one completion: the substring between the first "{" and
	// the last "}" is not valid JSON, so the whole completion is rejected
	// rather than silently picking one of them.
	_, err := extractObject(`{"a": 1} and also {"b": 2}`)
	assert.ErrorIs(t, err, entity.ErrNoJSONPayload)
}

package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

// extractObject pulls a JSON object out of a raw model completion. Models
// wrap payloads in prose or markdown fences often enough that a direct parse
// is tried first and the substring between the outermost braces second.
// Nothing beyond that: a completion with no parseable object is an error.
func extractObject(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty completion", entity.ErrNoJSONPayload)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
		return obj, nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no object braces", entity.ErrNoJSONPayload)
	}

	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrNoJSONPayload, err)
	}

	return obj, nil
}

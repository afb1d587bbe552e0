package keyboard

import (
	"fmt"
	"strings"
)

// Callback actions understood by the bot. Values stay short because
// Telegram caps callback data at 64 bytes.
const (
	ActionCategory = "cat"     // value: idea category
	ActionAnswer   = "ans"     // value: choice index, "yes" or "no"
	ActionControl  = "action"  // value: start, suggest, skip, restart
	ActionDownload = "dl"      // value: export format
	ActionConfirm  = "confirm" // value: cancel, continue
)

// Control values for ActionControl callbacks.
const (
	ControlStart   = "start"
	ControlSuggest = "suggest"
	ControlSkip    = "skip"
	ControlRestart = "restart"
)

// CallbackData represents parsed callback data
type CallbackData struct {
	Action string
	Value  string
}

// ParseCallback parses callback data string
func ParseCallback(data string) (*CallbackData, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid callback format: %s", data)
	}

	return &CallbackData{
		Action: parts[0],
		Value:  parts[1],
	}, nil
}

// EncodeCallback creates callback data string
func EncodeCallback(action, value string) string {
	return fmt.Sprintf("%s:%s", action, value)
}

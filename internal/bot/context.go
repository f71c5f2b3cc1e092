package bot

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// InteractionContext is the state bundle threaded through a two-phase
// deferred action: built when the comment modal opens, carried opaquely
// in the form's private metadata, and read back unchanged on
// submission. Nothing is stored server-side, so an abandoned form
// needs no cleanup.
type InteractionContext struct {
	Country string `json:"country"`
	Channel string `json:"channel"`
	User    string `json:"user"`
}

func (x InteractionContext) Encode() (string, error) {
	raw, err := json.Marshal(x)
	if err != nil {
		return "", fmt.Errorf("encode interaction context: %w", err)
	}
	return string(raw), nil
}

func DecodeContext(raw string) (InteractionContext, error) {
	var x InteractionContext
	if err := json.Unmarshal([]byte(raw), &x); err != nil {
		return InteractionContext{}, fmt.Errorf("decode interaction context: %w", err)
	}
	return x, nil
}

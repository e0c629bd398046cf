package domain

import "fmt"

// ─── Update Actions ─────────────────────────────────────────────────────────
// The façade accepts a closed set of update operations. Dispatch happens on
// this type, never on raw request strings, so an unhandled case is a
// compile-time concern.

// Action identifies an accounting update operation.
type Action string

const (
	// ActionUpdateTimer adds elapsed study seconds and recomputes coins.
	ActionUpdateTimer Action = "update_timer"

	// ActionAddCoin credits coins derived from a block of study seconds
	// into the bonus pool without touching recorded study time.
	ActionAddCoin Action = "add_coin"
)

// ParseAction maps a wire-level action field to a known Action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionUpdateTimer:
		return ActionUpdateTimer, nil
	case ActionAddCoin:
		return ActionAddCoin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

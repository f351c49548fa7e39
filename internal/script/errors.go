package script

import (
	"errors"
	"fmt"

	"github.com/dshills/dotrepeat/internal/input"
)

var (
	// ErrInvalidStep indicates a step with no action, several actions or
	// stray modifiers.
	ErrInvalidStep = errors.New("invalid step")

	// ErrNotInsertMode indicates typing outside insert mode.
	ErrNotInsertMode = input.ErrNotInsertMode

	// ErrUnknownVisual indicates an unknown visual submode.
	ErrUnknownVisual = errors.New("unknown visual submode")
)

// StepError reports the step a run stopped at.
type StepError struct {
	Index  int
	Action string
	Err    error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Action, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

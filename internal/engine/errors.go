package engine

import (
	"errors"

	"github.com/dshills/dotrepeat/internal/engine/history"
)

var (
	// ErrSelectionOutOfRange is returned for a selection index past the
	// last selection.
	ErrSelectionOutOfRange = errors.New("selection index out of range")

	// ErrReadOnly is returned by edits on an engine built WithReadOnly.
	ErrReadOnly = errors.New("engine is read-only")

	ErrNothingToUndo = history.ErrNothingToUndo
	ErrNothingToRedo = history.ErrNothingToRedo
)

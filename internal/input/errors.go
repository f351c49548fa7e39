package input

import "errors"

var (
	// ErrBadNotation indicates an unknown <name> in key notation.
	ErrBadNotation = errors.New("bad key notation")

	// ErrNotInsertMode indicates typing outside insert mode.
	ErrNotInsertMode = errors.New("not in insert mode")
)

package cursor

import (
	"fmt"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
)

type (
	ByteOffset = buffer.ByteOffset
	Range      = buffer.Range
)

// Selection spans from Anchor to Head. Typing happens at Head; an empty
// selection is a plain cursor.
type Selection struct {
	Anchor ByteOffset
	Head   ByteOffset
}

// NewSelection returns the selection from anchor to head.
func NewSelection(anchor, head ByteOffset) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection returns an empty selection at offset.
func NewCursorSelection(offset ByteOffset) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// NewRangeSelection covers r. A reversed selection has its head at r.Start.
func NewRangeSelection(r Range, reversed bool) Selection {
	if reversed {
		return Selection{Anchor: r.End, Head: r.Start}
	}
	return Selection{Anchor: r.Start, Head: r.End}
}

func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Range returns the ordered span of s.
func (s Selection) Range() Range {
	return Range{Start: s.Start(), End: s.End()}
}

func (s Selection) Start() ByteOffset {
	return min(s.Anchor, s.Head)
}

func (s Selection) End() ByteOffset {
	return max(s.Anchor, s.Head)
}

// IsBackward reports whether the head precedes the anchor.
func (s Selection) IsBackward() bool {
	return s.Head < s.Anchor
}

// Collapse returns an empty selection at the head.
func (s Selection) Collapse() Selection {
	return NewCursorSelection(s.Head)
}

// merge covers both selections. The result is backward only when both are.
func (s Selection) merge(other Selection) Selection {
	r := Range{Start: min(s.Start(), other.Start()), End: max(s.End(), other.End())}
	return NewRangeSelection(r, s.IsBackward() && other.IsBackward())
}

func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("cursor@%d", s.Head)
	}
	return fmt.Sprintf("%d..%d", s.Anchor, s.Head)
}

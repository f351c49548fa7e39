package buffer

import "fmt"

// Edit replaces Range with NewText.
type Edit struct {
	Range   Range
	NewText string
}

// NewEdit returns an edit replacing r with text.
func NewEdit(r Range, text string) Edit {
	return Edit{Range: r, NewText: text}
}

func (e Edit) String() string {
	return fmt.Sprintf("%s -> %q", e.Range, e.NewText)
}

// delta is the change in buffer length.
func (e Edit) delta() ByteOffset {
	return ByteOffset(len(e.NewText)) - e.Range.Len()
}

// TransformOffset maps offset across edit. Offsets after the edit shift by
// its delta, offsets inside it move to the end of the new text, and offsets
// before it stay put. Text inserted exactly at offset pushes it forward.
func TransformOffset(offset ByteOffset, edit Edit) ByteOffset {
	switch {
	case edit.Range.End <= offset:
		return offset + edit.delta()
	case edit.Range.Start >= offset:
		return offset
	}
	return edit.Range.Start + ByteOffset(len(edit.NewText))
}

// Change is the net difference, for one contiguous region, between the
// buffer at a checkpoint and the buffer now. Start is in current
// coordinates; the Old fields describe the region at the checkpoint and
// the New fields describe it now.
type Change struct {
	Start     Point
	OldExtent Extent
	NewExtent Extent
	OldText   string
	NewText   string
}

func (c Change) String() string {
	return fmt.Sprintf("%s %q -> %q", c.Start, c.OldText, c.NewText)
}

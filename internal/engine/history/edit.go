package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
	"github.com/dshills/dotrepeat/internal/engine/cursor"
)

type (
	ByteOffset = buffer.ByteOffset
	Range      = buffer.Range
	Selection  = cursor.Selection
)

// Undoable is a history entry.
type Undoable interface {
	Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error
	Redo(buf *buffer.Buffer, cursors *cursor.CursorSet) error
	Describe() string
}

// Edit is a replacement already applied to the buffer: Range held OldText
// and now holds NewText.
type Edit struct {
	Range   Range
	OldText string
	NewText string

	// Before and After are the cursors around the edit. Nil leaves the
	// cursors where the buffer edit put them.
	Before []Selection
	After  []Selection
}

// NewEdit records a replacement of r.
func NewEdit(r Range, oldText, newText string) *Edit {
	return &Edit{Range: r, OldText: oldText, NewText: newText}
}

// WithCursors sets the surrounding cursors.
func (e *Edit) WithCursors(before, after []Selection) *Edit {
	e.Before, e.After = before, after
	return e
}

// applied is the range NewText occupies.
func (e *Edit) applied() Range {
	return Range{Start: e.Range.Start, End: e.Range.Start + ByteOffset(len(e.NewText))}
}

// Undo puts OldText back.
func (e *Edit) Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	r := e.applied()
	if _, err := buf.Replace(r.Start, r.End, e.OldText); err != nil {
		return fmt.Errorf("undo %s: %w", e.Describe(), err)
	}
	if e.Before != nil {
		cursors.SetAll(e.Before)
	}
	return nil
}

// Redo applies NewText again.
func (e *Edit) Redo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	if _, err := buf.Replace(e.Range.Start, e.Range.End, e.NewText); err != nil {
		return fmt.Errorf("redo %s: %w", e.Describe(), err)
	}
	if e.After != nil {
		cursors.SetAll(e.After)
	}
	return nil
}

// Describe summarizes the edit.
func (e *Edit) Describe() string {
	removed := utf8.RuneCountInString(e.OldText)
	added := utf8.RuneCountInString(e.NewText)
	switch {
	case removed == 0 && e.NewText == "\n":
		return "newline"
	case removed == 0:
		return fmt.Sprintf("insert %d", added)
	case added == 0:
		return fmt.Sprintf("delete %d", removed)
	}
	return fmt.Sprintf("replace %d with %d", removed, added)
}

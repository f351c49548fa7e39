package history

import (
	"fmt"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
	"github.com/dshills/dotrepeat/internal/engine/cursor"
)

// Group undoes and redoes its members as one entry.
type Group struct {
	Name    string
	Members []Undoable

	// Before is restored after Undo and After after Redo, overriding the
	// cursors the members leave behind.
	Before []Selection
	After  []Selection
}

// Undo reverts the members last to first.
func (g *Group) Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	for i := len(g.Members) - 1; i >= 0; i-- {
		if err := g.Members[i].Undo(buf, cursors); err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
	}
	if g.Before != nil {
		cursors.SetAll(g.Before)
	}
	return nil
}

// Redo reapplies the members in order. A failing member rolls back the
// ones already reapplied.
func (g *Group) Redo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	for i, m := range g.Members {
		if err := m.Redo(buf, cursors); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = g.Members[j].Undo(buf, cursors)
			}
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
	}
	if g.After != nil {
		cursors.SetAll(g.After)
	}
	return nil
}

// Describe returns the group name.
func (g *Group) Describe() string {
	return g.Name
}

// Checkpoint marks a history position that later entries can be grouped
// back to.
type Checkpoint struct {
	seq     uint64
	cursors []Selection
}

// Checkpoint marks the current position and remembers cursors to restore
// when the group is undone.
func (h *History) Checkpoint(cursors []Selection) Checkpoint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Checkpoint{seq: h.nextSeq, cursors: append([]Selection(nil), cursors...)}
}

// GroupSince collapses every entry pushed after cp into one Group named
// name. It reports false when nothing was pushed since cp. Entries trimmed
// off the bottom of the stack are not recovered.
func (h *History) GroupSince(cp Checkpoint, name string, after []Selection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	idx := len(h.undo)
	for idx > 0 && h.undo[idx-1].seq >= cp.seq {
		idx--
	}
	if idx == len(h.undo) {
		return false
	}

	tail := h.undo[idx:]
	g := &Group{
		Name:    name,
		Members: make([]Undoable, len(tail)),
		Before:  cp.cursors,
		After:   append([]Selection(nil), after...),
	}
	for i, e := range tail {
		g.Members[i] = e.item
	}
	h.undo = append(h.undo[:idx], entry{item: g, seq: tail[0].seq})
	return true
}

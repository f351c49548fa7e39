package history

import (
	"errors"
	"sync"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
	"github.com/dshills/dotrepeat/internal/engine/cursor"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultLimit caps the undo stack when NewHistory is given no limit.
const DefaultLimit = 1000

// entry carries a push sequence number so checkpoints stay valid after
// the bottom of the stack is trimmed.
type entry struct {
	item Undoable
	seq  uint64
}

// History holds the undo and redo stacks of one buffer.
type History struct {
	mu      sync.Mutex
	undo    []entry
	redo    []entry
	nextSeq uint64
	limit   int
}

// NewHistory creates a history keeping at most limit undo entries.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Push records an applied entry and clears the redo stack.
func (h *History) Push(u Undoable) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo = append(h.undo, entry{item: u, seq: h.nextSeq})
	h.nextSeq++
	h.redo = nil
	if over := len(h.undo) - h.limit; over > 0 {
		h.undo = h.undo[over:]
	}
}

// Undo reverts the newest entry. On failure the entry stays on the undo
// stack.
func (h *History) Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undo) == 0 {
		return ErrNothingToUndo
	}
	e := h.undo[len(h.undo)-1]
	if err := e.item.Undo(buf, cursors); err != nil {
		return err
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, e)
	return nil
}

// Redo reapplies the newest undone entry.
func (h *History) Redo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.redo) == 0 {
		return ErrNothingToRedo
	}
	e := h.redo[len(h.redo)-1]
	if err := e.item.Redo(buf, cursors); err != nil {
		return err
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, e)
	return nil
}

func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo) > 0
}

func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo) > 0
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

// Newest describes the entry Undo would revert.
func (h *History) Newest() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undo) == 0 {
		return "", false
	}
	return h.undo[len(h.undo)-1].item.Describe(), true
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo, h.redo = nil, nil
}

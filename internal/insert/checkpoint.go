package insert

import (
	"fmt"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
)

// Checkpoint purposes used by a session.
const (
	PurposeUndo   = "undo"
	PurposeInsert = "insert"
)

// CheckpointManager tracks one buffer checkpoint per purpose.
type CheckpointManager struct {
	ed  Editor
	ids map[string]CheckpointID
}

// NewCheckpointManager creates a manager over ed.
func NewCheckpointManager(ed Editor) *CheckpointManager {
	return &CheckpointManager{ed: ed, ids: make(map[string]CheckpointID)}
}

// Open creates a checkpoint for purpose, replacing any previous one.
func (m *CheckpointManager) Open(purpose string) CheckpointID {
	if old, ok := m.ids[purpose]; ok {
		m.ed.RemoveCheckpoint(old)
	}
	id := m.ed.CreateCheckpoint()
	m.ids[purpose] = id
	return id
}

func (m *CheckpointManager) lookup(purpose string) (CheckpointID, error) {
	id, ok := m.ids[purpose]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrCheckpointNotOpen, purpose)
	}
	return id, nil
}

// Diff returns the earliest change made since the purpose's checkpoint,
// or nil when nothing changed.
func (m *CheckpointManager) Diff(purpose string) (*ChangeRecord, error) {
	id, err := m.lookup(purpose)
	if err != nil {
		return nil, err
	}
	changes, err := m.ed.ChangesSinceCheckpoint(id)
	if err != nil {
		return nil, fmt.Errorf("changes since %q: %w", purpose, err)
	}
	if len(changes) == 0 {
		return nil, nil
	}
	return newChangeRecord(changes[0]), nil
}

// Group folds every edit since the purpose's checkpoint into one undo step.
// When restore is non-nil the primary cursor sits at its position while
// grouping, so redo lands there, and restore is destroyed.
func (m *CheckpointManager) Group(purpose string, restore *buffer.Marker) error {
	id, err := m.lookup(purpose)
	if err != nil {
		return err
	}
	if restore == nil {
		return m.group(purpose, id)
	}

	saved := m.ed.SelectionHead(0)
	m.ed.SetCursorPosition(0, restore.Head())
	restore.Destroy()
	err = m.group(purpose, id)
	m.ed.SetCursorPosition(0, saved)
	return err
}

func (m *CheckpointManager) group(purpose string, id CheckpointID) error {
	if err := m.ed.GroupChangesSinceCheckpoint(id); err != nil {
		return fmt.Errorf("group %q: %w", purpose, err)
	}
	return nil
}

// Release forgets every checkpoint.
func (m *CheckpointManager) Release() {
	for purpose, id := range m.ids {
		m.ed.RemoveCheckpoint(id)
		delete(m.ids, purpose)
	}
}

package insert

import (
	"testing"

	"github.com/dshills/dotrepeat/internal/engine"
	"github.com/dshills/dotrepeat/internal/engine/buffer"
	"github.com/stretchr/testify/require"
)

func TestCheckpointManagerDiff(t *testing.T) {
	ed := engine.New(engine.WithContent("foo"))
	ed.SetCursorPosition(0, Point{Column: 3})
	m := NewCheckpointManager(ed)

	_, err := m.Diff(PurposeInsert)
	require.ErrorIs(t, err, ErrCheckpointNotOpen)

	m.Open(PurposeInsert)
	change, err := m.Diff(PurposeInsert)
	require.NoError(t, err)
	require.Nil(t, change)

	require.NoError(t, ed.InsertText(0, "ba", false))
	require.NoError(t, ed.InsertText(0, "r", false))
	change, err = m.Diff(PurposeInsert)
	require.NoError(t, err)
	require.Equal(t, &ChangeRecord{Start: Point{Column: 3}, NewExtent: buffer.Extent{Columns: 3}, NewText: "bar"}, change)
	require.Equal(t, Point{Column: 6}, change.End())

	m.Release()
	_, err = m.Diff(PurposeInsert)
	require.ErrorIs(t, err, ErrCheckpointNotOpen)
}

func TestCheckpointManagerReopen(t *testing.T) {
	ed := engine.New(engine.WithContent("x"))
	m := NewCheckpointManager(ed)

	m.Open(PurposeUndo)
	require.NoError(t, ed.InsertText(0, "a", false))
	m.Open(PurposeUndo)
	require.NoError(t, ed.InsertText(0, "b", false))

	change, err := m.Diff(PurposeUndo)
	require.NoError(t, err)
	require.Equal(t, "b", change.NewText)
	require.Equal(t, Point{Column: 1}, change.Start)
}

func TestCheckpointManagerGroupRestoresCursor(t *testing.T) {
	ed := engine.New(engine.WithContent("ab"))
	m := NewCheckpointManager(ed)
	marker := ed.MarkPosition(Point{Column: 2})

	m.Open(PurposeUndo)
	require.NoError(t, ed.InsertText(0, "x", false))
	require.NoError(t, ed.InsertText(0, "y", false))
	require.NoError(t, m.Group(PurposeUndo, marker))

	require.True(t, marker.IsDestroyed())
	require.Equal(t, Point{Column: 2}, ed.SelectionHead(0))
	require.Equal(t, 1, ed.UndoCount())

	require.NoError(t, ed.Undo())
	require.NoError(t, ed.Redo())
	require.Equal(t, "xyab", ed.Text())
	require.Equal(t, Point{Column: 4}, ed.SelectionHead(0))
}

func TestChangeRecordClone(t *testing.T) {
	var nilRecord *ChangeRecord
	require.Nil(t, nilRecord.clone())

	c := &ChangeRecord{NewText: "a"}
	cp := c.clone()
	cp.NewText = "b"
	require.Equal(t, "a", c.NewText)
}

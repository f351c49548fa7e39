// Package engine provides the text editing engine the insert controller
// drives.
//
// The engine package serves as the main facade, combining buffer management,
// selection handling, undo/redo and change checkpoints into a unified,
// thread-safe API.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: Text storage with line index, checkpoints and markers
//   - cursor: Multi-cursor and selection management
//   - history: Command-based undo/redo with after-the-fact grouping
//
// # Selections
//
// Every selection is addressed by index. Index 0 is the primary selection
// and, after NormalizeSelections, the earliest one in the buffer. Edits made
// through InsertText collapse the edited selection after the new text and
// shift the others.
//
// # Checkpoints
//
// A checkpoint records the net buffer changes made after it and the cursors
// at the time it was taken:
//
//	e := engine.New(engine.WithContent("foo"))
//	cp := e.CreateCheckpoint()
//	e.SetCursorPosition(0, engine.Point{Line: 0, Column: 3})
//	e.InsertText(0, "bar", false)
//
//	changes, _ := e.ChangesSinceCheckpoint(cp) // one change, NewText "bar"
//	e.GroupChangesSinceCheckpoint(cp)          // one undo step
//	e.RemoveCheckpoint(cp)
//
// # Thread Safety
//
// All Engine operations are thread-safe. The engine uses a read-write mutex
// to allow concurrent reads while serializing writes.
package engine

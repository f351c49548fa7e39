package engine

import (
	"strings"
	"sync"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
	"github.com/dshills/dotrepeat/internal/engine/cursor"
	"github.com/dshills/dotrepeat/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Point represents a line/column position.
	Point = buffer.Point

	// PointRange is a range of line/column positions.
	PointRange = buffer.PointRange

	// Range represents a byte range in the buffer.
	Range = buffer.Range

	// Selection represents a cursor selection.
	Selection = cursor.Selection

	// Change is a net change reported by a checkpoint.
	Change = buffer.Change

	// CheckpointID identifies an open checkpoint.
	CheckpointID = buffer.CheckpointID
)

// Engine is the main facade for the text editor engine.
// It combines buffer management, cursor handling, undo/redo and
// checkpoints into a unified, thread-safe API.
type Engine struct {
	mu sync.RWMutex

	// Core components
	buf     *buffer.Buffer
	cursors *cursor.CursorSet
	history *history.History

	// Checkpoint bookkeeping: each buffer checkpoint has a history
	// checkpoint used to group undo entries.
	checkpoints map[CheckpointID]history.Checkpoint

	folds *foldSet

	autoIndent bool
	readOnly   bool

	initContent string
}

// New creates an engine with a single cursor at the start of the content.
func New(opts ...Option) *Engine {
	e := &Engine{
		checkpoints: make(map[CheckpointID]history.Checkpoint),
		folds:       &foldSet{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.buf = buffer.NewBufferFromString(e.initContent)
	e.cursors = cursor.NewCursorSetAt(0)
	e.history = history.NewHistory(history.DefaultLimit)
	return e
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// Len returns the total byte length of the buffer.
func (e *Engine) Len() ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Len()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// LineText returns the text of a line without its newline.
func (e *Engine) LineText(row int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineText(row)
}

// ClipPoint returns the nearest valid position to p.
func (e *Engine) ClipPoint(p Point) Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.ClipPoint(p)
}

// IsReadOnly reports whether edits are rejected.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Write Operations
// ============================================================================

// replaceLocked replaces r with text on behalf of selection idx, transforms
// every other selection and records the edit for undo. The edited selection
// collapses to the end of the new text. Pass idx < 0 to leave all selections
// to the transform.
func (e *Engine) replaceLocked(idx int, r Range, text string) (ByteOffset, error) {
	if e.readOnly {
		return 0, ErrReadOnly
	}

	oldText := e.buf.TextRange(r.Start, r.End)
	cursorsBefore := e.cursors.All()

	end, err := e.buf.Replace(r.Start, r.End, text)
	if err != nil {
		return 0, err
	}

	cursor.TransformCursorSet(e.cursors, buffer.NewEdit(r, text), idx)
	if idx >= 0 {
		e.cursors.Replace(idx, cursor.NewCursorSelection(end))
	}

	if oldText == "" && text == "" {
		return end, nil
	}
	e.history.Push(history.NewEdit(r, oldText, text).WithCursors(cursorsBefore, e.cursors.All()))
	return end, nil
}

// InsertText replaces selection i with text and leaves the cursor after it.
// With autoIndent, every line the text opens that has no leading whitespace
// receives the indentation of the row the insertion starts on.
func (e *Engine) InsertText(i int, text string, autoIndent bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i < 0 || i >= e.cursors.Count() {
		return ErrSelectionOutOfRange
	}
	r := e.cursors.Get(i).Range()
	if autoIndent && strings.Contains(text, "\n") {
		row := e.buf.OffsetToPoint(r.Start).Line
		text = indentContinuationLines(text, leadingWhitespace(e.buf.LineText(row)))
	}
	_, err := e.replaceLocked(i, r, text)
	return err
}

// Backspace deletes the selected text of every selection, or the grapheme
// before each empty cursor. A cursor at column 0 joins its line with the
// previous one.
func (e *Engine) Backspace() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := 0; i < e.cursors.Count(); i++ {
		r := e.cursors.Get(i).Range()
		if r.IsEmpty() {
			if r.Start == 0 {
				continue
			}
			p := e.buf.OffsetToPoint(r.Start)
			if p.Column == 0 {
				r.Start--
			} else {
				col := buffer.PrevGraphemeColumn(e.buf.LineText(p.Line), p.Column)
				r.Start = e.buf.PointToOffset(Point{Line: p.Line, Column: col})
			}
		}
		if _, err := e.replaceLocked(i, r, ""); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo undoes the last operation.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Undo(e.buf, e.cursors)
}

// Redo redoes the last undone operation.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Redo(e.buf, e.cursors)
}

// UndoCount returns the number of undo entries.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// ============================================================================
// Checkpoints and Markers
// ============================================================================

// CreateCheckpoint starts recording buffer changes and remembers the
// current cursors for grouping.
func (e *Engine) CreateCheckpoint() CheckpointID {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.buf.CreateCheckpoint()
	e.checkpoints[id] = e.history.Checkpoint(e.cursors.All())
	return id
}

// ChangesSinceCheckpoint returns the net changes since the checkpoint,
// ordered by position.
func (e *Engine) ChangesSinceCheckpoint(id CheckpointID) ([]Change, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.ChangesSinceCheckpoint(id)
}

// GroupChangesSinceCheckpoint folds every edit since the checkpoint into a
// single undo step. Undoing it restores the cursors captured when the
// checkpoint was created.
func (e *Engine) GroupChangesSinceCheckpoint(id CheckpointID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp, ok := e.checkpoints[id]
	if !ok {
		return buffer.ErrCheckpointNotFound
	}
	e.history.GroupSince(cp, "insert", e.cursors.All())
	return nil
}

// RemoveCheckpoint stops recording for the checkpoint.
func (e *Engine) RemoveCheckpoint(id CheckpointID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf.RemoveCheckpoint(id)
	delete(e.checkpoints, id)
}

// MarkPosition creates a marker that follows p through later edits.
func (e *Engine) MarkPosition(p Point) *buffer.Marker {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.MarkPosition(p)
}

// ============================================================================
// Auto-indent
// ============================================================================

// AutoIndentEnabled reports whether the editor auto-indents new rows.
func (e *Engine) AutoIndentEnabled() bool {
	return e.autoIndent
}

// AutoIndentRow sets the indentation of row to that of the nearest
// non-blank row above it, or below it when there is none above.
func (e *Engine) AutoIndentRow(row int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if row < 0 || row >= e.buf.LineCount() {
		return nil
	}
	indent := e.suggestedIndentLocked(row)
	current := leadingWhitespace(e.buf.LineText(row))
	if indent == current {
		return nil
	}
	start := e.buf.LineStartOffset(row)
	_, err := e.replaceLocked(-1, Range{Start: start, End: start + ByteOffset(len(current))}, indent)
	return err
}

func (e *Engine) suggestedIndentLocked(row int) string {
	for r := row - 1; r >= 0; r-- {
		if line := e.buf.LineText(r); strings.TrimSpace(line) != "" {
			return leadingWhitespace(line)
		}
	}
	for r := row + 1; r < e.buf.LineCount(); r++ {
		if line := e.buf.LineText(r); strings.TrimSpace(line) != "" {
			return leadingWhitespace(line)
		}
	}
	return ""
}

// InsertNewlineAbove opens an empty row above every cursor row and moves
// each cursor onto its new row.
func (e *Engine) InsertNewlineAbove() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := 0; i < e.cursors.Count(); i++ {
		row := e.buf.OffsetToPoint(e.cursors.Get(i).Head).Line
		var at ByteOffset
		if row > 0 {
			at = e.buf.LineEndOffset(row - 1)
		}
		end, err := e.replaceLocked(i, Range{Start: at, End: at}, "\n")
		if err != nil {
			return err
		}
		if row == 0 {
			e.cursors.Replace(i, cursor.NewCursorSelection(0))
		} else {
			e.cursors.Replace(i, cursor.NewCursorSelection(end))
		}
	}
	return nil
}

// InsertNewlineBelow opens an empty row below every cursor row and moves
// each cursor onto its new row.
func (e *Engine) InsertNewlineBelow() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := 0; i < e.cursors.Count(); i++ {
		row := e.buf.OffsetToPoint(e.cursors.Get(i).Head).Line
		at := e.buf.LineEndOffset(row)
		if _, err := e.replaceLocked(i, Range{Start: at, End: at}, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// indentContinuationLines prefixes indent to every non-empty line after the
// first that has no leading whitespace of its own.
func indentContinuationLines(text, indent string) string {
	if indent == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" && leadingWhitespace(lines[i]) == "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

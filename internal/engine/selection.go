package engine

import (
	"strings"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
	"github.com/dshills/dotrepeat/internal/engine/cursor"
)

// ============================================================================
// Cursor and Selection Management
// ============================================================================

// SelectionCount returns the number of selections.
func (e *Engine) SelectionCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Count()
}

// SelectionRange returns selection i as a point range.
func (e *Engine) SelectionRange(i int) PointRange {
	e.mu.RLock()
	defer e.mu.RUnlock()
	r := e.cursors.Get(i).Range()
	return PointRange{Start: e.buf.OffsetToPoint(r.Start), End: e.buf.OffsetToPoint(r.End)}
}

// SelectionHead returns the cursor position of selection i.
func (e *Engine) SelectionHead(i int) Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.OffsetToPoint(e.cursors.Get(i).Head)
}

// IsReversed reports whether selection i has its head before its anchor.
func (e *Engine) IsReversed(i int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Get(i).IsBackward()
}

// SelectionText returns the text covered by selection i.
func (e *Engine) SelectionText(i int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	r := e.cursors.Get(i).Range()
	return e.buf.TextRange(r.Start, r.End)
}

// SetSelectionRange replaces selection i.
func (e *Engine) SetSelectionRange(i int, r PointRange, reversed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.Replace(i, cursor.NewRangeSelection(e.rangeLocked(r), reversed))
}

// SetCursorPosition collapses selection i to p.
func (e *Engine) SetCursorPosition(i int, p Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.Replace(i, cursor.NewCursorSelection(e.buf.PointToOffset(p)))
}

// SetSelectionRanges replaces all selections with forward selections over
// ranges. An empty slice leaves a single cursor at the start of the buffer.
func (e *Engine) SetSelectionRanges(ranges []PointRange) {
	e.mu.Lock()
	defer e.mu.Unlock()
	sels := make([]Selection, len(ranges))
	for i, r := range ranges {
		sels[i] = cursor.NewRangeSelection(e.rangeLocked(r), false)
	}
	e.cursors.SetAll(sels)
}

// SetCursorPositions replaces all selections with cursors at points.
func (e *Engine) SetCursorPositions(points []Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	sels := make([]Selection, len(points))
	for i, p := range points {
		sels[i] = cursor.NewCursorSelection(e.buf.PointToOffset(p))
	}
	e.cursors.SetAll(sels)
}

// CursorPositions returns the head of every selection in order.
func (e *Engine) CursorPositions() []Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	sels := e.cursors.All()
	points := make([]Point, len(sels))
	for i, s := range sels {
		points[i] = e.buf.OffsetToPoint(s.Head)
	}
	return points
}

// ClearSelections keeps only the primary selection, collapsed to its head.
func (e *Engine) ClearSelections() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.Clear()
	e.cursors.Replace(0, e.cursors.Primary().Collapse())
}

// NormalizeSelections sorts the selections and merges overlapping ones.
func (e *Engine) NormalizeSelections() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.Normalize()
}

// SplitSelectionsIntoLines replaces every multi-line selection with one
// selection per row it covers. A final row entered only at column 0 is
// dropped.
func (e *Engine) SplitSelectionsIntoLines() {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []Selection
	for _, sel := range e.cursors.All() {
		r := sel.Range()
		start, end := e.buf.OffsetToPoint(r.Start), e.buf.OffsetToPoint(r.End)
		if start.Line == end.Line {
			out = append(out, sel)
			continue
		}
		out = append(out, cursor.NewSelection(r.Start, e.buf.LineEndOffset(start.Line)))
		for row := start.Line + 1; row < end.Line; row++ {
			out = append(out, cursor.NewSelection(e.buf.LineStartOffset(row), e.buf.LineEndOffset(row)))
		}
		if end.Column != 0 {
			out = append(out, cursor.NewSelection(e.buf.LineStartOffset(end.Line), r.End))
		}
	}
	e.cursors.SetAll(out)
}

// TrimmedLineRange returns the range of row without its leading and
// trailing whitespace. A blank row yields an empty range at its end.
func (e *Engine) TrimmedLineRange(row int) PointRange {
	e.mu.RLock()
	defer e.mu.RUnlock()
	line := e.buf.LineText(row)
	start := len(line) - len(strings.TrimLeft(line, " \t"))
	end := len(strings.TrimRight(line, " \t"))
	if end < start {
		end = start
	}
	return PointRange{Start: Point{Line: row, Column: start}, End: Point{Line: row, Column: end}}
}

func (e *Engine) rangeLocked(r PointRange) buffer.Range {
	start, end := e.buf.PointToOffset(r.Start), e.buf.PointToOffset(r.End)
	if end < start {
		start, end = end, start
	}
	return buffer.Range{Start: start, End: end}
}

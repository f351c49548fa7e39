package engine

import "strings"

// foldSet holds the start rows of folded regions. Fold regions are derived
// from indentation: a row starts a fold when the next non-blank row is
// indented deeper.
type foldSet struct {
	starts []int
}

func indentWidth(line string) int {
	return len(leadingWhitespace(line))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// foldEndLocked returns the last row of the fold starting at row, or -1
// when row does not start a fold.
func (e *Engine) foldEndLocked(row int) int {
	count := e.buf.LineCount()
	if row < 0 || row >= count || isBlank(e.buf.LineText(row)) {
		return -1
	}
	base := indentWidth(e.buf.LineText(row))
	end := -1
	for r := row + 1; r < count; r++ {
		line := e.buf.LineText(r)
		if isBlank(line) {
			continue
		}
		if indentWidth(line) <= base {
			break
		}
		end = r
	}
	return end
}

// FoldStartRows returns every row that starts an indentation fold, in
// ascending order.
func (e *Engine) FoldStartRows() []int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var rows []int
	for r := 0; r < e.buf.LineCount(); r++ {
		if e.foldEndLocked(r) >= 0 {
			rows = append(rows, r)
		}
	}
	return rows
}

// Fold folds the innermost fold region containing row.
// Returns false when row is not inside any fold region.
func (e *Engine) Fold(row int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for start := row; start >= 0; start-- {
		if end := e.foldEndLocked(start); end >= row {
			for _, s := range e.folds.starts {
				if s == start {
					return true
				}
			}
			e.folds.starts = append(e.folds.starts, start)
			return true
		}
	}
	return false
}

// UnfoldAll removes every fold.
func (e *Engine) UnfoldAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.folds.starts = nil
}

// FoldEndRow returns the last row of the largest folded region containing
// row, or row itself when it is not folded.
func (e *Engine) FoldEndRow(row int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	result := row
	for _, start := range e.folds.starts {
		end := e.foldEndLocked(start)
		if start <= row && row <= end && end > result {
			result = end
		}
	}
	return result
}

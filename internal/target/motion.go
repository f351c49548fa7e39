package target

import (
	"strings"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
	"github.com/dshills/dotrepeat/internal/insert"
)

type point = insert.Point

func span(start, end point) insert.PointRange {
	return insert.PointRange{Start: start, End: end}
}

// moveRight covers the count characters right of the cursor. On an empty
// line it yields an empty range so a substitute still starts insert mode.
func moveRight(ed insert.Editor, i, count int) (insert.PointRange, bool) {
	head := ed.SelectionHead(i)
	line := ed.LineText(head.Line)
	end := head.Column
	for n := 0; n < count && end < len(line); n++ {
		end = buffer.NextGraphemeColumn(line, end)
	}
	return span(head, point{Line: head.Line, Column: end}), true
}

func moveLeft(ed insert.Editor, i, count int) (insert.PointRange, bool) {
	head := ed.SelectionHead(i)
	line := ed.LineText(head.Line)
	start := head.Column
	for n := 0; n < count && start > 0; n++ {
		start = buffer.PrevGraphemeColumn(line, start)
	}
	if start == head.Column {
		return insert.PointRange{}, false
	}
	return span(point{Line: head.Line, Column: start}, head), true
}

// moveToLastCharacterOfLine covers the cursor through the end of the line,
// count-1 lines down.
func moveToLastCharacterOfLine(ed insert.Editor, i, count int) (insert.PointRange, bool) {
	head := ed.SelectionHead(i)
	last := min(head.Line+count-1, ed.LineCount()-1)
	return span(head, point{Line: last, Column: len(ed.LineText(last))}), true
}

// moveToRelativeLine covers count whole rows starting at the cursor row,
// including the final line break when there is one.
func moveToRelativeLine(ed insert.Editor, i, count int) (insert.PointRange, bool) {
	first := ed.SelectionHead(i).Line
	last := min(first+count-1, ed.LineCount()-1)
	end := point{Line: last + 1}
	if last+1 >= ed.LineCount() {
		end = point{Line: last, Column: len(ed.LineText(last))}
	}
	return span(point{Line: first}, end), true
}

type foldStarts interface {
	FoldStartRows() []int
}

func firstCharacter(ed insert.Editor, row int) point {
	line := ed.LineText(row)
	return point{Line: row, Column: len(line) - len(strings.TrimLeft(line, " \t"))}
}

func moveToPreviousFoldStart(ed insert.Editor, i, count int) (insert.PointRange, bool) {
	folds, ok := ed.(foldStarts)
	if !ok {
		return insert.PointRange{}, false
	}
	head := ed.SelectionHead(i)
	rows := folds.FoldStartRows()
	found := -1
	for j := len(rows) - 1; j >= 0 && count > 0; j-- {
		if rows[j] < head.Line {
			found = rows[j]
			count--
		}
	}
	if found < 0 {
		return insert.PointRange{}, false
	}
	return span(firstCharacter(ed, found), head), true
}

func moveToNextFoldStart(ed insert.Editor, i, count int) (insert.PointRange, bool) {
	folds, ok := ed.(foldStarts)
	if !ok {
		return insert.PointRange{}, false
	}
	head := ed.SelectionHead(i)
	found := -1
	for _, row := range folds.FoldStartRows() {
		if row > head.Line && count > 0 {
			found = row
			count--
		}
	}
	if found < 0 {
		return insert.PointRange{}, false
	}
	return span(head, firstCharacter(ed, found)), true
}

package insert

import (
	"strings"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
)

// MoveCursorsLeft moves every cursor one character left without leaving
// its line. Insert mode's exit hook uses it to land on the last typed
// character.
func MoveCursorsLeft(ed Editor) {
	for i := 0; i < ed.SelectionCount(); i++ {
		moveCursorLeft(ed, i)
	}
}

func moveCursorLeft(ed Editor, i int) {
	p := ed.SelectionHead(i)
	if p.Column == 0 {
		ed.SetCursorPosition(i, p)
		return
	}
	p.Column = buffer.PrevGraphemeColumn(ed.LineText(p.Line), p.Column)
	ed.SetCursorPosition(i, p)
}

// moveCursorLeftWrap moves the cursor left, onto the end of the previous
// line when it starts a line.
func moveCursorLeftWrap(ed Editor, i int) {
	p := ed.SelectionHead(i)
	switch {
	case p.Column > 0:
		p.Column = buffer.PrevGraphemeColumn(ed.LineText(p.Line), p.Column)
	case p.Line > 0:
		p = Point{Line: p.Line - 1, Column: len(ed.LineText(p.Line - 1))}
	}
	ed.SetCursorPosition(i, p)
}

func moveCursorRight(ed Editor, i int) {
	p := ed.SelectionHead(i)
	line := ed.LineText(p.Line)
	if p.Column < len(line) {
		p.Column = buffer.NextGraphemeColumn(line, p.Column)
	}
	ed.SetCursorPosition(i, p)
}

func eachCursor(ed Editor, fn func(i int, head Point, line string) Point) {
	for i := 0; i < ed.SelectionCount(); i++ {
		head := ed.SelectionHead(i)
		ed.SetCursorPosition(i, fn(i, head, ed.LineText(head.Line)))
	}
}

func firstCharacterColumn(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// earliestCursor returns the cursor closest to the start of the buffer.
func earliestCursor(ed Editor) Point {
	points := ed.CursorPositions()
	if len(points) == 0 {
		return Point{}
	}
	top := points[0]
	for _, p := range points[1:] {
		if p.Before(top) {
			top = p
		}
	}
	return top
}

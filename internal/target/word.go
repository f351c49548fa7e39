package target

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/dotrepeat/internal/insert"
)

type charClass uint8

const (
	classBlank charClass = iota
	classKeyword
	classPunct
)

func classOf(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classBlank
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classKeyword
	default:
		return classPunct
	}
}

func classAt(line string, col int) charClass {
	r, _ := utf8.DecodeRuneInString(line[col:])
	return classOf(r)
}

// runEnd returns the column just past the run of characters sharing the
// class of the character at col.
func runEnd(line string, col int) int {
	class := classAt(line, col)
	for col < len(line) && classAt(line, col) == class {
		_, size := utf8.DecodeRuneInString(line[col:])
		col += size
	}
	return col
}

// runStart returns the first column of the run containing col.
func runStart(line string, col int) int {
	class := classAt(line, col)
	for col > 0 {
		r, size := utf8.DecodeLastRuneInString(line[:col])
		if classOf(r) != class {
			break
		}
		col -= size
	}
	return col
}

func skipBlank(line string, col int) int {
	for col < len(line) && classAt(line, col) == classBlank {
		_, size := utf8.DecodeRuneInString(line[col:])
		col += size
	}
	return col
}

// clampToChar moves a column at the end of the line onto the last
// character.
func clampToChar(line string, col int) int {
	if col >= len(line) && len(line) > 0 {
		_, size := utf8.DecodeLastRuneInString(line)
		return len(line) - size
	}
	return col
}

// innerWord covers the run of word, blank or punctuation characters
// under the cursor.
func innerWord(ed insert.Editor, i, _ int) (insert.PointRange, bool) {
	head := ed.SelectionHead(i)
	line := ed.LineText(head.Line)
	if line == "" {
		return insert.PointRange{}, false
	}
	col := clampToChar(line, head.Column)
	return span(point{Line: head.Line, Column: runStart(line, col)}, point{Line: head.Line, Column: runEnd(line, col)}), true
}

// word covers count words forward. Like Vim's cw, a cursor inside a word
// stops at the end of the word rather than at the start of the next one.
func word(ed insert.Editor, i, count int) (insert.PointRange, bool) {
	head := ed.SelectionHead(i)
	line := ed.LineText(head.Line)
	end := head.Column
	for n := 0; n < count && end < len(line); n++ {
		if n > 0 {
			end = skipBlank(line, end)
			if end >= len(line) {
				break
			}
		}
		end = runEnd(line, end)
	}
	return span(head, point{Line: head.Line, Column: end}), true
}

// moveToEndOfWord covers the cursor through the end of the count-th word
// ending after it on the same line.
func moveToEndOfWord(ed insert.Editor, i, count int) (insert.PointRange, bool) {
	head := ed.SelectionHead(i)
	line := ed.LineText(head.Line)
	end := head.Column
	for n := 0; n < count; n++ {
		if end < len(line) {
			_, size := utf8.DecodeRuneInString(line[end:])
			// Step off the character under the cursor unless it starts a
			// longer run.
			if runEnd(line, end) == end+size {
				end += size
			}
		}
		end = skipBlank(line, end)
		if end >= len(line) {
			return insert.PointRange{}, false
		}
		end = runEnd(line, end)
	}
	return span(head, point{Line: head.Line, Column: end}), true
}

// Smart words are runs of keyword characters and hyphens.
func isSmart(b byte) bool {
	return b == '_' || b == '-' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func moveToPreviousSmartWord(ed insert.Editor, i, _ int) (insert.PointRange, bool) {
	head := ed.SelectionHead(i)
	col := head.Column
	for row := head.Line; row >= 0; row-- {
		line := ed.LineText(row)
		j := min(col, len(line)) - 1
		for j >= 0 && !isSmart(line[j]) {
			j--
		}
		if j >= 0 {
			for j > 0 && isSmart(line[j-1]) {
				j--
			}
			return span(point{Line: row, Column: j}, head), true
		}
		col = 1 << 30
	}
	return insert.PointRange{}, false
}

func moveToEndOfSmartWord(ed insert.Editor, i, _ int) (insert.PointRange, bool) {
	head := ed.SelectionHead(i)
	line := ed.LineText(head.Line)
	j := head.Column
	// Step off the last character of a smart word.
	if j < len(line) && isSmart(line[j]) && (j+1 >= len(line) || !isSmart(line[j+1])) {
		j++
	}
	for row := head.Line; row < ed.LineCount(); row++ {
		if row != head.Line {
			line, j = ed.LineText(row), 0
		}
		for j < len(line) && !isSmart(line[j]) {
			j++
		}
		if j < len(line) {
			for j < len(line) && isSmart(line[j]) {
				j++
			}
			return span(head, point{Line: row, Column: j}), true
		}
	}
	return insert.PointRange{}, false
}

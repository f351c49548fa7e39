package buffer

import (
	"fmt"
	"strings"
)

// ByteOffset indexes the buffer text.
type ByteOffset = int64

// Point is a zero-based row and byte column. Fields are signed so a
// traversal between two points fits the same type.
type Point struct {
	Line   int
	Column int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Before reports whether p sorts before other.
func (p Point) Before(other Point) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Traverse returns the point reached by walking extent e from p.
// A traversal with no rows moves along the current line; otherwise the
// column of the result is the column of the extent itself.
func (p Point) Traverse(e Extent) Point {
	if e.Rows == 0 {
		return Point{Line: p.Line, Column: p.Column + e.Columns}
	}
	return Point{Line: p.Line + e.Rows, Column: e.Columns}
}

// TraversalFrom returns the extent that, traversed from origin, yields p.
// The result may be negative when p lies before origin.
func (p Point) TraversalFrom(origin Point) Extent {
	if p.Line == origin.Line {
		return Extent{Columns: p.Column - origin.Column}
	}
	return Extent{Rows: p.Line - origin.Line, Columns: p.Column}
}

// Extent is a two-dimensional size: a number of line breaks followed by a
// number of bytes on the last line.
type Extent struct {
	Rows    int
	Columns int
}

// ExtentOf returns the extent covered by text.
func ExtentOf(text string) Extent {
	rows := strings.Count(text, "\n")
	if rows == 0 {
		return Extent{Columns: len(text)}
	}
	return Extent{Rows: rows, Columns: len(text) - strings.LastIndexByte(text, '\n') - 1}
}

// IsZero returns true if the extent covers nothing.
func (e Extent) IsZero() bool {
	return e.Rows == 0 && e.Columns == 0
}

// String returns a human-readable representation of the extent.
func (e Extent) String() string {
	return fmt.Sprintf("<%d,%d>", e.Rows, e.Columns)
}

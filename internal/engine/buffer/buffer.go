package buffer

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	ErrOffsetOutOfRange   = errors.New("offset out of range")
	ErrRangeInvalid       = errors.New("invalid range")
	ErrCheckpointNotFound = errors.New("checkpoint not found")
)

// Buffer is LF-normalized text with a row index. Open checkpoints and live
// markers follow every edit. All methods are safe for concurrent use.
type Buffer struct {
	mu    sync.RWMutex
	text  string
	lines []int // byte offset of each row start

	checkpoints map[CheckpointID]*patch
	nextCheckID CheckpointID
	markers     map[*Marker]struct{}
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return NewBufferFromString("")
}

// NewBufferFromString returns a buffer holding s with CRLF and CR
// converted to LF.
func NewBufferFromString(s string) *Buffer {
	b := &Buffer{
		text:        toLF(s),
		checkpoints: make(map[CheckpointID]*patch),
		markers:     make(map[*Marker]struct{}),
	}
	b.index()
	return b
}

func toLF(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}

// index rebuilds the row table. Callers hold the write lock.
func (b *Buffer) index() {
	lines := append(b.lines[:0], 0)
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	b.lines = lines
}

func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// TextRange returns the text in [start, end), clamped to the buffer.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end = b.clampOffset(start), b.clampOffset(end)
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// LineCount returns the number of rows. An empty buffer has one.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineText returns row without its newline, or "" past the last row.
func (b *Buffer) LineText(row int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.text[b.lines[row]:b.rowEnd(row)]
}

// LineStartOffset returns the offset of the first byte of row. Rows out
// of range are clamped.
func (b *Buffer) LineStartOffset(row int) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(b.lines[b.clampRow(row)])
}

// LineEndOffset returns the offset of row's newline, or the buffer end on
// the last row. Rows out of range are clamped.
func (b *Buffer) LineEndOffset(row int) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(b.rowEnd(b.clampRow(row)))
}

func (b *Buffer) rowEnd(row int) int {
	if row+1 < len(b.lines) {
		return b.lines[row+1] - 1
	}
	return len(b.text)
}

func (b *Buffer) clampRow(row int) int {
	return max(0, min(row, len(b.lines)-1))
}

func (b *Buffer) clampOffset(off ByteOffset) ByteOffset {
	return max(0, min(off, ByteOffset(len(b.text))))
}

// OffsetToPoint converts a clamped offset to a position.
func (b *Buffer) OffsetToPoint(off ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pointAt(off)
}

func (b *Buffer) pointAt(off ByteOffset) Point {
	o := int(b.clampOffset(off))
	row := sort.Search(len(b.lines), func(i int) bool { return b.lines[i] > o }) - 1
	return Point{Line: row, Column: o - b.lines[row]}
}

// PointToOffset converts a clipped position to an offset.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.offsetAt(p)
}

func (b *Buffer) offsetAt(p Point) ByteOffset {
	p = b.clip(p)
	return ByteOffset(b.lines[p.Line] + p.Column)
}

// ClipPoint returns the nearest position inside the buffer.
func (b *Buffer) ClipPoint(p Point) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.clip(p)
}

func (b *Buffer) clip(p Point) Point {
	switch {
	case p.Line < 0:
		return Point{}
	case p.Line >= len(b.lines):
		last := len(b.lines) - 1
		return Point{Line: last, Column: b.rowEnd(last) - b.lines[last]}
	}
	width := b.rowEnd(p.Line) - b.lines[p.Line]
	p.Column = max(0, min(p.Column, width))
	return p
}

// Insert inserts text at off and returns the offset after it.
func (b *Buffer) Insert(off ByteOffset, text string) (ByteOffset, error) {
	return b.Replace(off, off, text)
}

// Delete removes [start, end).
func (b *Buffer) Delete(start, end ByteOffset) error {
	_, err := b.Replace(start, end, "")
	return err
}

// Replace replaces [start, end) with text and returns the offset after
// the new text. Open checkpoints record the edit and live markers move.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if end < start {
		return 0, ErrRangeInvalid
	}
	if start < 0 || end > ByteOffset(len(b.text)) {
		return 0, ErrOffsetOutOfRange
	}

	edit := Edit{Range: Range{Start: start, End: end}, NewText: toLF(text)}
	before := b.text
	for _, p := range b.checkpoints {
		p.record(before, int(start), int(end), edit.NewText)
	}
	for m := range b.markers {
		m.offset = TransformOffset(m.offset, edit)
	}

	b.text = before[:start] + edit.NewText + before[end:]
	b.index()
	return start + ByteOffset(len(edit.NewText)), nil
}

// Package cursor tracks the selections of an editor.
//
// A selection runs from an anchor to a head; typing happens at the head.
// CursorSet keeps one selection per cursor, sorted with overlaps merged
// after Normalize, so index 0 is the earliest cursor in the buffer.
// CursorSet is not safe for concurrent use.
package cursor

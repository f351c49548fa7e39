// Package buffer holds editor text with a row index.
//
// Positions are byte offsets or (row, byte column) points. Checkpoints
// compose every later edit into disjoint regions, so typing "abc" one
// character at a time reports a single change and typing then deleting
// the same text reports none:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	cp := buf.CreateCheckpoint()
//	buf.Insert(7, "Beautiful ")
//	changes, _ := buf.ChangesSinceCheckpoint(cp)
//	// changes[0].NewText == "Beautiful "
//
// Markers follow a position through edits.
package buffer

// Package history records applied edits so they can be undone and redone.
//
// Every edit is pushed as its own entry. Insert sessions collapse their
// entries afterwards: take a checkpoint when the session starts and group
// everything pushed since it when the session ends.
//
//	cp := h.Checkpoint(cursors.All())
//	// ... edits pushed one by one ...
//	h.GroupSince(cp, "insert", cursors.All())
//
// Undoing a group restores the cursors captured by the checkpoint.
package history

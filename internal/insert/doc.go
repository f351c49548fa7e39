// Package insert implements Vim-style insert mode activation with change
// capture and replay.
//
// A Controller runs a Variant from the Catalog (i, a, A, o, cw, s, ...).
// Beginning a session adjusts the cursors, selects the variant's target,
// makes the operator-side mutation (a change deletes its target, o opens a
// row) and activates insert mode. When insert mode is left the controller
// captures the net change typed since insert mode began, stores it for
// repeat, fills the . register and the ^ [ ] marks, performs counted
// insertion (3i inserts the text two more times) and groups the whole
// session into one undo step.
//
// # Capture and Replay
//
// Capture compares the buffer with a checkpoint taken when insert mode
// began, so only the net delta survives: typing "ab" then backspacing
// once records "a". Only the earliest change is kept. Replay re-applies it
// at every cursor relative to where the cursor is, deleting text the
// session deleted before inserting what it typed.
//
// # Collaborators
//
// The controller never talks to concrete editor types. Host bundles the
// editor, mode manager, registers, marks, target selector and settings it
// uses; internal/engine, internal/input/mode, internal/input/vim,
// internal/target and internal/config provide implementations.
package insert

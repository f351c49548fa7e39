// Package target selects the text insert variants operate on.
//
// A Selector maps target names (MoveRight, InnerWord, MoveToRelativeLine,
// CurrentSelection, ...) to functions that turn each cursor into the range
// the motion or text object covers, the way an operator-pending motion
// does in Vim. With occurrence requested, every selected range is replaced
// by the matches of the keyword under the cursor inside it.
package target

// Package script replays scripted editing sessions against an in-memory
// editor wired to the insert controller.
//
// A script is YAML:
//
//	text: "foo\nbar\n"
//	cursors: [[0, 0]]
//	settings:
//	  groupChangesWhenLeavingInsertMode: true
//	steps:
//	  - keys: A
//	  - type: "!"
//	  - escape: true
//	  - cursor: [[1, 0]]
//	  - keys: "."
//
// Each step performs exactly one action. begin takes optional count and
// target modifiers. keys takes Vim key notation such as "cwfoo<Esc>" and
// must not end inside a normal-mode command.
package script

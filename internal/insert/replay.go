package insert

import (
	"strings"
	"unicode"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
	"github.com/rivo/uniseg"
)

// ReplayStrategy re-applies a captured change at selection i. origin is the
// earliest cursor position when the change was captured.
type ReplayStrategy interface {
	Replay(ed Editor, i int, last *ChangeRecord, origin Point) error
}

// ReplayEngine replays the net delta relative to the cursor. Text the
// session deleted is deleted again at the same offset from the cursor,
// then the new text is inserted with auto-indent.
//
// Only the earliest change of a session is captured, so edits made at
// other cursors or after moving the cursor in insert mode are not replayed.
type ReplayEngine struct{}

// Replay implements ReplayStrategy.
func (ReplayEngine) Replay(ed Editor, i int, last *ChangeRecord, origin Point) error {
	if last == nil {
		return ed.InsertText(i, "", true)
	}
	if !last.OldExtent.IsZero() {
		start := ed.SelectionHead(i).Traverse(last.Start.TraversalFrom(origin))
		end := start.Traverse(last.OldExtent)
		ed.SetSelectionRange(i, buffer.NewPointRange(start, end), false)
	}
	return ed.InsertText(i, last.NewText, true)
}

// ReplaceOverwrite replays text typed in the replace submode: each
// character overwrites the one under the cursor until the end of the line.
type ReplaceOverwrite struct{}

// Replay implements ReplayStrategy.
func (ReplaceOverwrite) Replay(ed Editor, i int, last *ChangeRecord, _ Point) error {
	text := lastText(last)
	r := ed.SelectionRange(i)
	head := r.End
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if g.Str() == "\n" {
			continue
		}
		line := ed.LineText(head.Line)
		if head.Column >= len(line) {
			break
		}
		head.Column = buffer.NextGraphemeColumn(line, head.Column)
	}
	ed.SetSelectionRange(i, PointRange{Start: r.Start, End: head}, false)
	return ed.InsertText(i, text, false)
}

// TrimLeadingInsert replays text typed on a freshly opened row. Leading
// whitespace is dropped since auto-indent supplies it.
type TrimLeadingInsert struct{}

// Replay implements ReplayStrategy.
func (TrimLeadingInsert) Replay(ed Editor, i int, last *ChangeRecord, _ Point) error {
	return ed.InsertText(i, strings.TrimLeftFunc(lastText(last), unicode.IsSpace), true)
}

func lastText(last *ChangeRecord) string {
	if last == nil {
		return ""
	}
	return last.NewText
}

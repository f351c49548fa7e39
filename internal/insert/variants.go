package insert

import (
	"strings"

	"github.com/dshills/dotrepeat/internal/input/mode"
)

func insertAfter(s *Session) error {
	ed := s.Editor()
	for i := 0; i < ed.SelectionCount(); i++ {
		moveCursorRight(ed, i)
	}
	return nil
}

func insertAtBeginningOfLine(s *Session) error {
	ed := s.Editor()
	if s.inVisual() && s.Submode() != mode.SubmodeBlockwise {
		ed.SplitSelectionsIntoLines()
	}
	eachCursor(ed, func(_ int, head Point, _ string) Point {
		return Point{Line: head.Line}
	})
	return nil
}

func insertAfterEndOfLine(s *Session) error {
	eachCursor(s.Editor(), func(_ int, head Point, line string) Point {
		return Point{Line: head.Line, Column: len(line)}
	})
	return nil
}

func insertAtFirstCharacterOfLine(s *Session) error {
	eachCursor(s.Editor(), func(_ int, head Point, line string) Point {
		return Point{Line: head.Line, Column: firstCharacterColumn(line)}
	})
	return nil
}

func insertAtLastInsert(s *Session) error {
	if s.Marks() == nil {
		return nil
	}
	if p, ok := s.Marks().Get('^'); ok {
		ed := s.Editor()
		ed.SetCursorPositions([]Point{ed.ClipPoint(p)})
	}
	return nil
}

func insertAboveWithNewline(s *Session) error {
	ed := s.Editor()
	if err := ed.InsertNewlineAbove(); err != nil {
		return err
	}
	return autoIndentEmptyRows(ed)
}

func insertBelowWithNewline(s *Session) error {
	ed := s.Editor()
	eachCursor(ed, func(_ int, head Point, _ string) Point {
		return ed.ClipPoint(Point{Line: ed.FoldEndRow(head.Line), Column: head.Column})
	})
	if err := ed.InsertNewlineBelow(); err != nil {
		return err
	}
	return autoIndentEmptyRows(ed)
}

func autoIndentEmptyRows(ed Editor) error {
	if !ed.AutoIndentEnabled() {
		return nil
	}
	for _, p := range ed.CursorPositions() {
		if ed.LineText(p.Line) != "" {
			continue
		}
		if err := ed.AutoIndentRow(p.Line); err != nil {
			return err
		}
	}
	return nil
}

// moveToWhich collapses every selection onto one of its sides. In visual
// characterwise and linewise modes the selections are first turned into
// per-row blocks, unless occurrences were selected.
func moveToWhich(which Which) Hook {
	return func(s *Session) error {
		ed := s.Editor()
		if !s.Target().OccurrenceSelected && s.inVisual() && s.Submode() != mode.SubmodeBlockwise {
			applyBlockwise(ed, s.Submode() == mode.SubmodeLinewise)
		}
		for i := 0; i < ed.SelectionCount(); i++ {
			r := ed.SelectionRange(i)
			var p Point
			switch which {
			case WhichStart:
				p = r.Start
			case WhichEnd:
				p = r.End
			default:
				p = ed.SelectionHead(i)
			}
			ed.SetCursorPosition(i, p)
		}
		return nil
	}
}

// applyBlockwise replaces every selection with one selection per row it
// spans. Linewise selections become each row's non-blank range; others keep
// the column span between their start and end.
func applyBlockwise(ed Editor, linewise bool) {
	var ranges []PointRange
	for i := 0; i < ed.SelectionCount(); i++ {
		r := ed.SelectionRange(i)
		first, last := r.Start.Line, r.End.Line
		if linewise && last > first && r.End.Column == 0 {
			last--
		}
		lo, hi := min(r.Start.Column, r.End.Column), max(r.Start.Column, r.End.Column)
		for row := first; row <= last; row++ {
			if linewise {
				ranges = append(ranges, ed.TrimmedLineRange(row))
				continue
			}
			ranges = append(ranges, PointRange{
				Start: ed.ClipPoint(Point{Line: row, Column: lo}),
				End:   ed.ClipPoint(Point{Line: row, Column: hi}),
			})
		}
	}
	if len(ranges) > 0 {
		ed.SetSelectionRanges(ranges)
	}
}

func extendBlockwiseToEndOfLine(s *Session) error {
	if s.Target().Wise != Blockwise {
		return nil
	}
	ed := s.Editor()
	for i := 0; i < ed.SelectionCount(); i++ {
		r := ed.SelectionRange(i)
		r.End = Point{Line: r.End.Line, Column: len(ed.LineText(r.End.Line))}
		ed.SetSelectionRange(i, r, ed.IsReversed(i))
	}
	return nil
}

// changeText removes the selected text. A linewise selection keeps an empty
// row for the cursor.
func changeText(s *Session) error {
	ed := s.Editor()
	linewise := s.Target().Wise == Linewise || detectLinewise(ed)
	updateRegister := s.host.Registers != nil && !s.Setting(SettingDontUpdateRegister)

	for i := 0; i < ed.SelectionCount(); i++ {
		text := ed.SelectionText(i)
		if updateRegister {
			s.host.Registers.SetChange(text, linewise)
		}
		if linewise && strings.HasSuffix(text, "\n") {
			if err := ed.InsertText(i, "\n", true); err != nil {
				return err
			}
			moveCursorLeftWrap(ed, i)
			continue
		}
		if err := ed.InsertText(i, "", true); err != nil {
			return err
		}
	}
	return nil
}

// detectLinewise reports whether every selection covers whole rows.
func detectLinewise(ed Editor) bool {
	for i := 0; i < ed.SelectionCount(); i++ {
		r := ed.SelectionRange(i)
		if r.Start.Column != 0 || r.End.Column != 0 || r.End.Line <= r.Start.Line {
			return false
		}
	}
	return true
}

package target

import (
	"sort"

	"github.com/dshills/dotrepeat/internal/insert"
	"github.com/dshills/dotrepeat/internal/input/mode"
)

// Func returns the range target selects for selection i, or false when the
// target finds nothing there.
type Func func(ed insert.Editor, i int, count int) (insert.PointRange, bool)

type entry struct {
	fn   Func
	wise insert.Wise
}

// Selector implements insert.TargetSelector over named targets.
type Selector struct {
	targets map[string]entry
}

// NewSelector returns a selector with the built-in targets.
func NewSelector() *Selector {
	s := &Selector{targets: make(map[string]entry)}
	s.Register(insert.TargetMoveRight, insert.Characterwise, moveRight)
	s.Register(insert.TargetMoveLeft, insert.Characterwise, moveLeft)
	s.Register(insert.TargetMoveToLastCharacterOfLine, insert.Characterwise, moveToLastCharacterOfLine)
	s.Register(insert.TargetMoveToRelativeLine, insert.Linewise, moveToRelativeLine)
	s.Register(insert.TargetInnerWord, insert.Characterwise, innerWord)
	s.Register(insert.TargetWord, insert.Characterwise, word)
	s.Register(insert.TargetMoveToEndOfWord, insert.Characterwise, moveToEndOfWord)
	s.Register(insert.TargetMoveToPreviousSmartWord, insert.Characterwise, moveToPreviousSmartWord)
	s.Register(insert.TargetMoveToEndOfSmartWord, insert.Characterwise, moveToEndOfSmartWord)
	s.Register(insert.TargetMoveToPreviousFoldStart, insert.Characterwise, moveToPreviousFoldStart)
	s.Register(insert.TargetMoveToNextFoldStart, insert.Characterwise, moveToNextFoldStart)
	return s
}

// Register adds or replaces a named target.
func (s *Selector) Register(name string, wise insert.Wise, fn Func) {
	s.targets[name] = entry{fn: fn, wise: wise}
}

// Names returns the registered target names, including CurrentSelection.
func (s *Selector) Names() []string {
	names := []string{insert.TargetCurrentSelection}
	for name := range s.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SelectTarget implements insert.TargetSelector.
func (s *Selector) SelectTarget(ed insert.Editor, req insert.TargetRequest) (insert.TargetResult, bool) {
	cursorWordAt := ed.SelectionHead(0)

	var wise insert.Wise
	if req.Name == insert.TargetCurrentSelection {
		wise = visualWise(req.Submode)
	} else {
		e, ok := s.targets[req.Name]
		if !ok {
			return insert.TargetResult{}, false
		}
		if !s.apply(ed, e.fn, max(req.Count, 1)) {
			return insert.TargetResult{}, false
		}
		wise = e.wise
	}
	if req.Wise != insert.WiseUnset {
		wise = req.Wise
	}

	res := insert.TargetResult{Wise: wise}
	if req.Occurrence {
		if !selectOccurrences(ed, cursorWordAt, req.OccurrenceType) {
			return insert.TargetResult{}, false
		}
		res.OccurrenceSelected = true
		res.Wise = insert.Characterwise
	}
	return res, true
}

// apply selects fn's range at every selection. Selections where fn finds
// nothing are left alone; it reports whether any selection succeeded.
func (s *Selector) apply(ed insert.Editor, fn Func, count int) bool {
	found := false
	for i := 0; i < ed.SelectionCount(); i++ {
		r, ok := fn(ed, i, count)
		if !ok {
			continue
		}
		found = true
		ed.SetSelectionRange(i, r, false)
	}
	return found
}

func visualWise(submode string) insert.Wise {
	switch submode {
	case mode.SubmodeLinewise:
		return insert.Linewise
	case mode.SubmodeBlockwise:
		return insert.Blockwise
	default:
		return insert.Characterwise
	}
}

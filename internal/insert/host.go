package insert

import (
	"github.com/dshills/dotrepeat/internal/engine/buffer"
	"github.com/dshills/dotrepeat/internal/input/mode"
)

// Re-exported position types.
type (
	Point        = buffer.Point
	Extent       = buffer.Extent
	PointRange   = buffer.PointRange
	CheckpointID = buffer.CheckpointID
)

// Editor is the text surface a session drives. Selections are addressed by
// index in buffer order.
type Editor interface {
	LineCount() int
	LineText(row int) string
	ClipPoint(p Point) Point

	SelectionCount() int
	SelectionRange(i int) PointRange
	SelectionHead(i int) Point
	IsReversed(i int) bool
	SelectionText(i int) string
	SetSelectionRange(i int, r PointRange, reversed bool)
	SetCursorPosition(i int, p Point)
	SetSelectionRanges(ranges []PointRange)
	SetCursorPositions(points []Point)
	CursorPositions() []Point
	ClearSelections()
	NormalizeSelections()
	SplitSelectionsIntoLines()
	TrimmedLineRange(row int) PointRange

	// InsertText replaces selection i with text and collapses it after the
	// inserted text.
	InsertText(i int, text string, autoIndent bool) error

	CreateCheckpoint() CheckpointID
	ChangesSinceCheckpoint(id CheckpointID) ([]buffer.Change, error)
	GroupChangesSinceCheckpoint(id CheckpointID) error
	RemoveCheckpoint(id CheckpointID)
	MarkPosition(p Point) *buffer.Marker

	AutoIndentEnabled() bool
	AutoIndentRow(row int) error
	InsertNewlineAbove() error
	InsertNewlineBelow() error
	FoldEndRow(row int) int
}

// ModeManager activates modes and announces deactivation.
type ModeManager interface {
	CurrentName() string
	Submode() string
	Activate(name, submode string) error
	PreemptWillDeactivate(fn func(mode.Transition)) mode.Disposable
}

// Registers receives inserted and changed text.
type Registers interface {
	SetLastInserted(text string)
	SetChange(text string, linewise bool)
}

// Marks stores named positions.
type Marks interface {
	Set(name rune, p Point)
	Get(name rune) (Point, bool)
}

// TargetSelector selects the text a variant operates on. It returns false
// when the target yields nothing.
type TargetSelector interface {
	SelectTarget(ed Editor, req TargetRequest) (TargetResult, bool)
}

// Settings answers boolean settings by name.
type Settings interface {
	Bool(name string) bool
}

// Setting names consulted by the controller.
const (
	SettingGroupChanges         = "groupChangesWhenLeavingInsertMode"
	SettingClearMultipleCursors = "clearMultipleCursorsOnEscapeInsertMode"
	SettingDontUpdateRegister   = "dontUpdateRegisterOnChangeOrSubstitute"
)

// StaticSettings is a fixed settings map. Missing names fall back to the
// defaults.
type StaticSettings map[string]bool

// Bool implements Settings.
func (s StaticSettings) Bool(name string) bool {
	if v, ok := s[name]; ok {
		return v
	}
	return defaultSettings[name]
}

var defaultSettings = map[string]bool{
	SettingGroupChanges:         true,
	SettingClearMultipleCursors: true,
	SettingDontUpdateRegister:   false,
}

// Host bundles the collaborators a controller talks to. Editor and Modes
// are required; Targets is only needed by variants that select a target.
type Host struct {
	Editor    Editor
	Modes     ModeManager
	Registers Registers
	Marks     Marks
	Targets   TargetSelector
	Settings  Settings
}

// Wise is the shape of a selection.
type Wise uint8

const (
	// WiseUnset leaves the shape to the target.
	WiseUnset Wise = iota
	Characterwise
	Linewise
	Blockwise
)

// String returns the wise name.
func (w Wise) String() string {
	switch w {
	case Characterwise:
		return "characterwise"
	case Linewise:
		return "linewise"
	case Blockwise:
		return "blockwise"
	default:
		return "unset"
	}
}

// Which picks a side of a selected range.
type Which uint8

const (
	WhichStart Which = iota
	WhichEnd
	WhichHead
)

// OccurrenceType selects how occurrences are matched.
type OccurrenceType uint8

const (
	// OccurrenceBase matches whole keywords.
	OccurrenceBase OccurrenceType = iota

	// OccurrenceSubword matches camelCase and snake_case parts.
	OccurrenceSubword
)

// TargetRequest asks a TargetSelector for a named target.
type TargetRequest struct {
	Name           string
	Wise           Wise
	Occurrence     bool
	OccurrenceType OccurrenceType
	Count          int

	// Mode and Submode describe the mode the request was made in.
	Mode    string
	Submode string
}

// TargetResult reports what a TargetSelector selected.
type TargetResult struct {
	Wise               Wise
	OccurrenceSelected bool
}

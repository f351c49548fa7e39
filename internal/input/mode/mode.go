package mode

// Mode is one state of the modal machine. Enter and Exit see the transition
// that activates or leaves the mode.
type Mode interface {
	Name() string
	Enter(t Transition) error
	Exit(t Transition) error
}

// Transition describes a change of the active mode.
type Transition struct {
	From        string
	FromSubmode string
	To          string
	Submode     string
}

// Leaves reports whether t leaves the named mode for a different one.
func (t Transition) Leaves(name string) bool {
	return t.From == name && t.To != name
}

// Mode names.
const (
	ModeNormal = "normal"
	ModeInsert = "insert"
	ModeVisual = "visual"
)

// Submode names. Replace refines insert; the others refine visual.
const (
	SubmodeNone          = ""
	SubmodeReplace       = "replace"
	SubmodeCharacterwise = "characterwise"
	SubmodeLinewise      = "linewise"
	SubmodeBlockwise     = "blockwise"
)

type plain string

func (p plain) Name() string         { return string(p) }
func (plain) Enter(Transition) error { return nil }
func (plain) Exit(Transition) error  { return nil }

// NewNormalMode returns the resting mode.
func NewNormalMode() Mode { return plain(ModeNormal) }

// NewVisualMode returns the selection mode. Its submode picks the
// selection shape.
func NewVisualMode() Mode { return plain(ModeVisual) }

// ExitHook runs while insert mode is being left, after every preempting
// observer has been notified.
type ExitHook func(t Transition) error

type insertMode struct {
	onExit ExitHook
}

// NewInsertMode returns the text input mode. onExit may be nil.
func NewInsertMode(onExit ExitHook) Mode {
	return &insertMode{onExit: onExit}
}

func (m *insertMode) Name() string           { return ModeInsert }
func (m *insertMode) Enter(Transition) error { return nil }

func (m *insertMode) Exit(t Transition) error {
	if m.onExit == nil {
		return nil
	}
	return m.onExit(t)
}

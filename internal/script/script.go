package script

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Script is a scripted editing session.
type Script struct {
	Text       string          `yaml:"text"`
	AutoIndent *bool           `yaml:"autoIndent,omitempty"`
	ReadOnly   bool            `yaml:"readOnly,omitempty"`
	Cursors    []Position      `yaml:"cursors,omitempty"`
	Settings   map[string]bool `yaml:"settings,omitempty"`

	// Report names registers to include in the result besides the
	// defaults.
	Report []string `yaml:"report,omitempty"`

	Steps []Step `yaml:"steps"`
}

// Position is a zero-based line and column. In YAML it is either
// [line, col] or {line: n, col: n}.
type Position struct {
	Line int `yaml:"line"`
	Col  int `yaml:"col"`
}

// UnmarshalYAML accepts the sequence form as well as the mapping form.
func (p *Position) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.SequenceNode {
		var pair []int
		if err := n.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: position needs [line, col], got %d values", n.Line, len(pair))
		}
		p.Line, p.Col = pair[0], pair[1]
		return nil
	}
	type plain Position
	return n.Decode((*plain)(p))
}

// Span is a selection from Start to End.
type Span struct {
	Start Position `yaml:"start"`
	End   Position `yaml:"end"`
}

// Copy copies one register into another.
type Copy struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Step is a single scripted action.
type Step struct {
	Begin  string `yaml:"begin,omitempty"`
	Count       int    `yaml:"count,omitempty"`
	Target      string `yaml:"target,omitempty"`
	TargetCount int    `yaml:"targetCount,omitempty"`

	Keys      string     `yaml:"keys,omitempty"`
	Type      *string    `yaml:"type,omitempty"`
	Backspace int        `yaml:"backspace,omitempty"`
	Escape    bool       `yaml:"escape,omitempty"`
	Repeat    int        `yaml:"repeat,omitempty"`
	Undo      int        `yaml:"undo,omitempty"`
	Redo      int        `yaml:"redo,omitempty"`
	Cursor    []Position `yaml:"cursor,omitempty"`
	Select    []Span     `yaml:"select,omitempty"`
	Visual    string     `yaml:"visual,omitempty"`
	Fold      *int       `yaml:"fold,omitempty"`
	Unfold    bool       `yaml:"unfold,omitempty"`
	Copy      *Copy      `yaml:"copy,omitempty"`
}

// Action returns the name of the step's action, or "" when it has none or
// more than one.
func (s Step) Action() string {
	set := map[string]bool{
		"begin":     s.Begin != "",
		"keys":      s.Keys != "",
		"type":      s.Type != nil,
		"backspace": s.Backspace > 0,
		"escape":    s.Escape,
		"repeat":    s.Repeat > 0,
		"undo":      s.Undo > 0,
		"redo":      s.Redo > 0,
		"cursor":    len(s.Cursor) > 0,
		"select":    len(s.Select) > 0,
		"visual":    s.Visual != "",
		"fold":      s.Fold != nil,
		"unfold":    s.Unfold,
		"copy":      s.Copy != nil,
	}
	action := ""
	for name, ok := range set {
		if !ok {
			continue
		}
		if action != "" {
			return ""
		}
		action = name
	}
	return action
}

// Validate checks that every step has exactly one action.
func (sc *Script) Validate() error {
	for i, step := range sc.Steps {
		action := step.Action()
		if action == "" {
			return fmt.Errorf("%w: step %d must have exactly one action", ErrInvalidStep, i+1)
		}
		if action != "begin" && (step.Count != 0 || step.Target != "" || step.TargetCount != 0) {
			return fmt.Errorf("%w: step %d: count and target only apply to begin", ErrInvalidStep, i+1)
		}
		if step.Copy != nil && (len([]rune(step.Copy.From)) != 1 || len([]rune(step.Copy.To)) != 1) {
			return fmt.Errorf("%w: step %d: copy needs single-character register names", ErrInvalidStep, i+1)
		}
	}
	return nil
}

// Parse decodes and validates a YAML script.
func Parse(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return Parse(data)
}

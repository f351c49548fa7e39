package insert

import (
	"fmt"
	"sort"
	"sync"
)

// Target names understood by the catalog's variants.
const (
	TargetMoveRight                 = "MoveRight"
	TargetMoveLeft                  = "MoveLeft"
	TargetMoveToLastCharacterOfLine = "MoveToLastCharacterOfLine"
	TargetMoveToRelativeLine        = "MoveToRelativeLine"
	TargetInnerWord                 = "InnerWord"
	TargetWord                      = "Word"
	TargetMoveToEndOfWord           = "MoveToEndOfWord"
	TargetMoveToPreviousSmartWord   = "MoveToPreviousSmartWord"
	TargetMoveToEndOfSmartWord      = "MoveToEndOfSmartWord"
	TargetMoveToPreviousFoldStart   = "MoveToPreviousFoldStart"
	TargetMoveToNextFoldStart       = "MoveToNextFoldStart"
	TargetCurrentSelection          = "CurrentSelection"
)

// Hook customizes one step of a session.
type Hook func(s *Session) error

// Variant describes one way of entering insert mode.
type Variant struct {
	Name string

	// RequireTarget makes Begin fail with ErrTargetNotSelected unless a
	// target is selected. Target is the default target name.
	RequireTarget bool
	Target        string

	// Wise forces the shape of the selected target.
	Wise Wise

	Occurrence     bool
	OccurrenceType OccurrenceType

	// SupportCount enables counted insertion.
	SupportCount bool

	// FinalSubmode is the insert submode to activate, "" or "replace".
	FinalSubmode string

	// MarksOrigin remembers the cursor position at Begin so undo and redo
	// of the grouped change land there.
	MarksOrigin bool

	// Adjust runs before anything else, also when repeating.
	Adjust Hook

	// AfterSelect runs once the target has been selected.
	AfterSelect Hook

	// Prepare is the operator-side mutation made before typing starts.
	Prepare Hook

	// Replay re-applies the last change when repeating. Nil means
	// ReplayEngine.
	Replay ReplayStrategy
}

// Catalog is a table of variants keyed by name.
type Catalog struct {
	mu       sync.RWMutex
	variants map[string]*Variant
}

// NewCatalog returns a catalog holding the built-in variants.
func NewCatalog() *Catalog {
	c := &Catalog{variants: make(map[string]*Variant)}
	for _, v := range builtinVariants() {
		c.Register(v)
	}
	return c
}

// Register adds or replaces a variant.
func (c *Catalog) Register(v Variant) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.variants[v.Name] = &v
}

// Lookup returns the variant named name.
func (c *Catalog) Lookup(name string) (*Variant, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}

// Names returns every variant name in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.variants))
	for name := range c.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func builtinVariants() []Variant {
	variants := []Variant{
		{Name: "activate-insert-mode", SupportCount: true},
		{Name: "activate-replace-mode", SupportCount: true, FinalSubmode: "replace", Replay: ReplaceOverwrite{}},
		{Name: "insert-after", SupportCount: true, Adjust: insertAfter},
		{Name: "insert-at-beginning-of-line", SupportCount: true, Adjust: insertAtBeginningOfLine},
		{Name: "insert-after-end-of-line", SupportCount: true, Adjust: insertAfterEndOfLine},
		{Name: "insert-at-first-character-of-line", SupportCount: true, Adjust: insertAtFirstCharacterOfLine},
		{Name: "insert-at-last-insert", SupportCount: true, Adjust: insertAtLastInsert},
		{
			Name: "insert-above-with-newline", SupportCount: true, MarksOrigin: true,
			Prepare: insertAboveWithNewline, Replay: TrimLeadingInsert{},
		},
		{
			Name: "insert-below-with-newline", SupportCount: true, MarksOrigin: true,
			Prepare: insertBelowWithNewline, Replay: TrimLeadingInsert{},
		},
		{Name: "insert-at-start-of-smart-word", RequireTarget: true, Target: TargetMoveToPreviousSmartWord, SupportCount: true, AfterSelect: moveToWhich(WhichStart)},
		{Name: "insert-at-end-of-smart-word", RequireTarget: true, Target: TargetMoveToEndOfSmartWord, SupportCount: true, AfterSelect: moveToWhich(WhichEnd)},
		{Name: "insert-at-previous-fold-start", RequireTarget: true, Target: TargetMoveToPreviousFoldStart, SupportCount: true, AfterSelect: moveToWhich(WhichStart)},
		{Name: "insert-at-next-fold-start", RequireTarget: true, Target: TargetMoveToNextFoldStart, SupportCount: true, AfterSelect: moveToWhich(WhichEnd)},
		{Name: "change", RequireTarget: true, Prepare: changeText},
		{Name: "change-occurrence", RequireTarget: true, Occurrence: true, Prepare: changeText},
		{Name: "substitute", RequireTarget: true, Target: TargetMoveRight, Prepare: changeText},
		{Name: "substitute-line", RequireTarget: true, Target: TargetMoveToRelativeLine, Wise: Linewise, Prepare: changeText},
		{Name: "change-line", RequireTarget: true, Target: TargetMoveToRelativeLine, Wise: Linewise, Prepare: changeText},
		{
			Name: "change-to-last-character-of-line", RequireTarget: true, Target: TargetMoveToLastCharacterOfLine,
			AfterSelect: extendBlockwiseToEndOfLine, Prepare: changeText,
		},
	}

	sides := []struct {
		name  string
		which Which
	}{{"start", WhichStart}, {"end", WhichEnd}, {"head", WhichHead}}
	for _, side := range sides {
		variants = append(variants,
			Variant{
				Name: "insert-at-" + side.name + "-of-target", RequireTarget: true,
				SupportCount: true, AfterSelect: moveToWhich(side.which),
			},
			Variant{
				Name: "insert-at-" + side.name + "-of-occurrence", RequireTarget: true, Occurrence: true,
				SupportCount: true, AfterSelect: moveToWhich(side.which),
			},
			Variant{
				Name: "insert-at-" + side.name + "-of-subword-occurrence", RequireTarget: true,
				Occurrence: true, OccurrenceType: OccurrenceSubword,
				SupportCount: true, AfterSelect: moveToWhich(side.which),
			},
		)
	}
	return variants
}

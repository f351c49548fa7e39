package vim

// ParseStatus is the outcome of feeding one key.
type ParseStatus uint8

const (
	StatusPending ParseStatus = iota
	StatusComplete
	StatusInvalid
)

// ParseState is where the parser is inside a key sequence.
type ParseState uint8

const (
	StateInitial ParseState = iota
	StateCount
	// StateRegister follows a '"'.
	StateRegister
	// StateOperator follows c.
	StateOperator
	StateGPrefix
	// StateTextObjectPrefix follows ci.
	StateTextObjectPrefix
)

// Command is a parsed insert-entering command.
type Command struct {
	// Count is the repeat count (0 means none was typed).
	Count int

	// Register is the register named with ", or 0.
	Register rune

	// Variant is the insert variant to begin, empty for a repeat.
	Variant string

	// Target names the target the variant operates on, if any.
	Target string

	// Repeat is set for the dot command.
	Repeat bool
}

// ParseResult is returned by Feed. Command is set only when Status is
// StatusComplete.
type ParseResult struct {
	Status  ParseStatus
	Command *Command
}

// Keys that enter insert mode directly.
var simpleKeys = map[rune]string{
	'i': "activate-insert-mode",
	'a': "insert-after",
	'I': "insert-at-first-character-of-line",
	'A': "insert-after-end-of-line",
	'o': "insert-below-with-newline",
	'O': "insert-above-with-newline",
	'R': "activate-replace-mode",
	's': "substitute",
	'S': "substitute-line",
	'C': "change-to-last-character-of-line",
}

// Keys following g.
var gKeys = map[rune]string{
	'i': "insert-at-last-insert",
	'I': "insert-at-beginning-of-line",
}

// Motions accepted after c.
var motionTargets = map[rune]string{
	'l': "MoveRight",
	'h': "MoveLeft",
	'$': "MoveToLastCharacterOfLine",
	'w': "Word",
	'e': "MoveToEndOfWord",
}

// Text objects accepted after ci.
var innerTargets = map[rune]string{
	'w': "InnerWord",
}

// Parser parses Vim key sequences that enter insert mode.
type Parser struct {
	state      ParseState
	count1     count
	count2     count
	register   rune
	occurrence bool

	pendingKeys []rune
}

// NewParser creates a new parser.
func NewParser() *Parser {
	return &Parser{pendingKeys: make([]rune, 0, 8)}
}

// Reset clears all parser state.
func (p *Parser) Reset() {
	p.state = StateInitial
	p.count1.reset()
	p.count2.reset()
	p.register = 0
	p.occurrence = false
	p.pendingKeys = p.pendingKeys[:0]
}

// State returns the current parser state.
func (p *Parser) State() ParseState {
	return p.state
}

// PendingKeys returns the keys fed since the last reset.
func (p *Parser) PendingKeys() string {
	return string(p.pendingKeys)
}

// Feed processes one key.
func (p *Parser) Feed(r rune) ParseResult {
	if r == 0x1b {
		p.Reset()
		return ParseResult{Status: StatusInvalid}
	}
	p.pendingKeys = append(p.pendingKeys, r)

	switch p.state {
	case StateInitial, StateCount:
		return p.feedInitial(r)
	case StateRegister:
		if !IsValidRegister(r) {
			return p.invalid()
		}
		p.register = r
		p.state = StateInitial
		return p.pending()
	case StateGPrefix:
		if variant, ok := gKeys[r]; ok {
			return p.complete(&Command{Variant: variant})
		}
		return p.invalid()
	case StateOperator:
		return p.feedOperator(r)
	case StateTextObjectPrefix:
		if target, ok := innerTargets[r]; ok {
			return p.complete(p.change(target))
		}
		return p.invalid()
	}
	return p.invalid()
}

func (p *Parser) feedInitial(r rune) ParseResult {
	if p.count1.digit(r) {
		p.state = StateCount
		return p.pending()
	}
	switch r {
	case '"':
		if p.register != 0 {
			return p.invalid()
		}
		p.state = StateRegister
		return p.pending()
	case 'g':
		p.state = StateGPrefix
		return p.pending()
	case 'c':
		p.state = StateOperator
		return p.pending()
	case '.':
		return p.complete(&Command{Repeat: true})
	}
	if variant, ok := simpleKeys[r]; ok {
		return p.complete(&Command{Variant: variant})
	}
	return p.invalid()
}

func (p *Parser) feedOperator(r rune) ParseResult {
	if p.count2.digit(r) {
		return p.pending()
	}
	switch r {
	case 'c':
		if p.occurrence {
			return p.invalid()
		}
		return p.complete(&Command{Variant: "change-line", Target: "MoveToRelativeLine"})
	case 'o':
		if p.occurrence {
			return p.invalid()
		}
		p.occurrence = true
		return p.pending()
	case 'i':
		p.state = StateTextObjectPrefix
		return p.pending()
	}
	if target, ok := motionTargets[r]; ok {
		return p.complete(p.change(target))
	}
	return p.invalid()
}

func (p *Parser) change(target string) *Command {
	variant := "change"
	if p.occurrence {
		variant = "change-occurrence"
	}
	return &Command{Variant: variant, Target: target}
}

func (p *Parser) pending() ParseResult {
	return ParseResult{Status: StatusPending}
}

func (p *Parser) invalid() ParseResult {
	p.Reset()
	return ParseResult{Status: StatusInvalid}
}

func (p *Parser) complete(cmd *Command) ParseResult {
	if p.count1.typed || p.count2.typed {
		cmd.Count = multiply(p.count1.n, p.count2.n)
	}
	cmd.Register = p.register
	p.Reset()
	return ParseResult{Status: StatusComplete, Command: cmd}
}

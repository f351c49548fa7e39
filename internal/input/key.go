package input

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Special identifies a non-printing key.
type Special uint8

const (
	// KeyRune is a printable key; Key.Rune holds it.
	KeyRune Special = iota
	KeyEscape
	KeyBackspace
	KeyEnter
	KeyTab
)

// Key is one keystroke.
type Key struct {
	Special Special
	Rune    rune
}

// RuneKey returns the key for r.
func RuneKey(r rune) Key {
	return Key{Special: KeyRune, Rune: r}
}

var specialNames = map[string]Key{
	"esc":   {Special: KeyEscape},
	"bs":    {Special: KeyBackspace},
	"cr":    {Special: KeyEnter},
	"enter": {Special: KeyEnter},
	"tab":   {Special: KeyTab},
	"lt":    RuneKey('<'),
}

// String returns the key in notation form.
func (k Key) String() string {
	switch k.Special {
	case KeyEscape:
		return "<Esc>"
	case KeyBackspace:
		return "<BS>"
	case KeyEnter:
		return "<CR>"
	case KeyTab:
		return "<Tab>"
	}
	if k.Rune == '<' {
		return "<lt>"
	}
	return string(k.Rune)
}

// ParseNotation splits s into keys. Names in angle brackets are matched
// case-insensitively; a "<" with no closing ">" is a literal.
func ParseNotation(s string) ([]Key, error) {
	var keys []Key
	for s != "" {
		if s[0] == '<' {
			if end := strings.IndexByte(s, '>'); end > 0 {
				name := s[1:end]
				k, ok := specialNames[strings.ToLower(name)]
				if !ok {
					return nil, fmt.Errorf("%w: <%s>", ErrBadNotation, name)
				}
				keys = append(keys, k)
				s = s[end+1:]
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(s)
		keys = append(keys, RuneKey(r))
		s = s[size:]
	}
	return keys, nil
}

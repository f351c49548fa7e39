package vim

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
)

// parseKeys feeds a whole key sequence such as "3A" or "ciw".
func parseKeys(keys string) (*Command, error) {
	p := NewParser()
	runes := []rune(keys)
	for i, r := range runes {
		res := p.Feed(r)
		switch res.Status {
		case StatusInvalid:
			return nil, fmt.Errorf("%w: %q", ErrInvalidKeys, keys)
		case StatusComplete:
			if i != len(runes)-1 {
				return nil, fmt.Errorf("%w: trailing keys in %q", ErrInvalidKeys, keys)
			}
			return res.Command, nil
		}
	}
	return nil, fmt.Errorf("%w: incomplete %q", ErrInvalidKeys, keys)
}

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantVariant string
		wantTarget  string
		wantCount   int
	}{
		{"i", "i", "activate-insert-mode", "", 0},
		{"3i", "3i", "activate-insert-mode", "", 3},
		{"a", "a", "insert-after", "", 0},
		{"A", "A", "insert-after-end-of-line", "", 0},
		{"I", "I", "insert-at-first-character-of-line", "", 0},
		{"gI", "gI", "insert-at-beginning-of-line", "", 0},
		{"gi", "gi", "insert-at-last-insert", "", 0},
		{"o", "o", "insert-below-with-newline", "", 0},
		{"2O", "2O", "insert-above-with-newline", "", 2},
		{"R", "R", "activate-replace-mode", "", 0},
		{"s", "s", "substitute", "", 0},
		{"S", "S", "substitute-line", "", 0},
		{"C", "C", "change-to-last-character-of-line", "", 0},
		{"cw", "cw", "change", "Word", 0},
		{"c$", "c$", "change", "MoveToLastCharacterOfLine", 0},
		{"ciw", "ciw", "change", "InnerWord", 0},
		{"coiw", "coiw", "change-occurrence", "InnerWord", 0},
		{"cc", "cc", "change-line", "MoveToRelativeLine", 0},
		{"2c3l", "2c3l", "change", "MoveRight", 6},
		{"12i", "12i", "activate-insert-mode", "", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := parseKeys(tt.input)
			if err != nil {
				t.Fatalf("ParseKeys(%q) error = %v", tt.input, err)
			}
			if cmd.Variant != tt.wantVariant {
				t.Errorf("variant = %q, want %q", cmd.Variant, tt.wantVariant)
			}
			if cmd.Target != tt.wantTarget {
				t.Errorf("target = %q, want %q", cmd.Target, tt.wantTarget)
			}
			if cmd.Count != tt.wantCount {
				t.Errorf("count = %d, want %d", cmd.Count, tt.wantCount)
			}
		})
	}
}

func TestParseKeysRepeatAndRegister(t *testing.T) {
	cmd, err := parseKeys(".")
	if err != nil || !cmd.Repeat {
		t.Fatalf("ParseKeys(.) = %+v, %v", cmd, err)
	}

	cmd, err = parseKeys(`"acw`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Register != 'a' || cmd.Variant != "change" {
		t.Errorf("got %+v", cmd)
	}
}

func TestParseKeysInvalid(t *testing.T) {
	for _, input := range []string{"", "x", "c", "cx", "gx", "cia", "coo", "ii", `"!i`, "0i"} {
		if _, err := parseKeys(input); !errors.Is(err, ErrInvalidKeys) {
			t.Errorf("ParseKeys(%q) error = %v, want ErrInvalidKeys", input, err)
		}
	}
}

func TestParserPendingState(t *testing.T) {
	p := NewParser()

	res := p.Feed('2')
	if res.Status != StatusPending || p.State() != StateCount {
		t.Fatalf("after 2: status=%v state=%v", res.Status, p.State())
	}
	res = p.Feed('c')
	if res.Status != StatusPending || p.State() != StateOperator {
		t.Fatalf("after c: status=%v state=%v", res.Status, p.State())
	}
	if p.PendingKeys() != "2c" {
		t.Errorf("PendingKeys = %q, want 2c", p.PendingKeys())
	}

	res = p.Feed(0x1b)
	if res.Status != StatusInvalid || p.State() != StateInitial {
		t.Errorf("escape should reset, got status=%v state=%v", res.Status, p.State())
	}
	if p.PendingKeys() != "" {
		t.Errorf("PendingKeys after reset = %q", p.PendingKeys())
	}
}

func TestCount(t *testing.T) {
	var c count
	if c.digit('0') {
		t.Error("leading 0 should not start a count")
	}
	c.digit('1')
	c.digit('0')
	if !c.typed || c.n != 10 {
		t.Errorf("count = %+v, want 10", c)
	}
	c.reset()
	if c.typed || c.n != 0 {
		t.Error("reset should clear the count")
	}

	if got := multiply(0, 3); got != 3 {
		t.Errorf("multiply(0, 3) = %d, want 3", got)
	}
	if got := multiply(2, 3); got != 6 {
		t.Errorf("multiply(2, 3) = %d, want 6", got)
	}
}

func TestRegisterStore(t *testing.T) {
	rs := NewRegisterStore()

	rs.Set('a', "hello", false)
	if got, _ := rs.Get('a'); got != "hello" {
		t.Errorf("register a = %q", got)
	}
	rs.Set('A', " world", false)
	if got, _ := rs.Get('a'); got != "hello world" {
		t.Errorf("append to a = %q", got)
	}

	rs.Set('_', "gone", false)
	if got, _ := rs.Get('_'); got != "" {
		t.Errorf("black hole should stay empty, got %q", got)
	}

	rs.Set('.', "nope", false)
	if got, _ := rs.Get('.'); got != "" {
		t.Errorf(". should be read-only for Set, got %q", got)
	}
	rs.SetLastInserted("typed")
	if got, _ := rs.Get('.'); got != "typed" {
		t.Errorf(". = %q, want typed", got)
	}
}

func TestRegisterStoreSetChange(t *testing.T) {
	rs := NewRegisterStore()

	rs.SetChange("word", false)
	if got, _ := rs.Get('-'); got != "word" {
		t.Errorf("small change should go to -, got %q", got)
	}
	if got, _ := rs.Get('"'); got != "word" {
		t.Errorf("unnamed = %q, want word", got)
	}
	if got, _ := rs.Get('1'); got != "" {
		t.Errorf("small change should not rotate, 1 = %q", got)
	}

	rs.SetChange("line one\n", true)
	rs.SetChange("line two\n", true)
	if got, linewise := rs.Get('1'); got != "line two\n" || !linewise {
		t.Errorf("1 = %q linewise=%v", got, linewise)
	}
	if got, _ := rs.Get('2'); got != "line one\n" {
		t.Errorf("2 = %q", got)
	}
	if got, _ := rs.Get('-'); got != "word" {
		t.Errorf("linewise change should leave -, got %q", got)
	}
}

type fakeClipboard struct {
	content string
}

func (f *fakeClipboard) Get() (string, error)     { return f.content, nil }
func (f *fakeClipboard) Set(content string) error { f.content = content; return nil }

func TestRegisterStoreClipboard(t *testing.T) {
	rs := NewRegisterStore()
	cb := &fakeClipboard{}
	rs.SetClipboard(cb)

	rs.Set('+', "copied", false)
	if cb.content != "copied" {
		t.Errorf("clipboard = %q", cb.content)
	}
	cb.content = "from os\n"
	if got, linewise := rs.Get('*'); got != "from os\n" || !linewise {
		t.Errorf("* = %q linewise=%v", got, linewise)
	}
}

func TestIsValidRegister(t *testing.T) {
	for _, r := range `"azAZ09-_.+*` {
		if !IsValidRegister(r) {
			t.Errorf("IsValidRegister(%q) = false", r)
		}
	}
	for _, r := range "!@ " {
		if IsValidRegister(r) {
			t.Errorf("IsValidRegister(%q) = true", r)
		}
	}
}

func TestMarkStore(t *testing.T) {
	ms := NewMarkStore()

	if _, ok := ms.Get(MarkLastInsert); ok {
		t.Error("unset mark should not be found")
	}
	ms.Set(MarkLastInsert, buffer.Point{Line: 2, Column: 4})
	if p, ok := ms.Get(MarkLastInsert); !ok || p != (buffer.Point{Line: 2, Column: 4}) {
		t.Errorf("^ = %v, %v", p, ok)
	}

	ms.Set('!', buffer.Point{})
	if _, ok := ms.Get('!'); ok {
		t.Error("invalid mark should be ignored")
	}
}

package vim

import (
	"strings"
	"sync"
	"unicode"
)

// ClipboardProvider backs the + and * registers.
type ClipboardProvider interface {
	Get() (string, error)
	Set(content string) error
}

type register struct {
	content  string
	linewise bool
}

// RegisterStore holds register contents. The zero value is not usable; call
// NewRegisterStore.
type RegisterStore struct {
	mu        sync.RWMutex
	regs      map[rune]*register
	clipboard ClipboardProvider
}

// NewRegisterStore returns a store with every writable register empty.
func NewRegisterStore() *RegisterStore {
	rs := &RegisterStore{regs: make(map[rune]*register)}
	for _, name := range `"-.+*0123456789abcdefghijklmnopqrstuvwxyz` {
		rs.regs[name] = &register{}
	}
	return rs
}

// SetClipboard routes the + and * registers to clipboard.
func (rs *RegisterStore) SetClipboard(clipboard ClipboardProvider) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.clipboard = clipboard
}

func (rs *RegisterStore) systemClipboard(name rune) ClipboardProvider {
	if name != '+' && name != '*' {
		return nil
	}
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.clipboard
}

// Get returns the content of register name and whether it is linewise.
// Clipboard content is linewise when it ends in a newline.
func (rs *RegisterStore) Get(name rune) (string, bool) {
	name = unicode.ToLower(name)
	if cb := rs.systemClipboard(name); cb != nil {
		content, err := cb.Get()
		if err != nil {
			return "", false
		}
		return content, strings.HasSuffix(content, "\n")
	}

	rs.mu.RLock()
	defer rs.mu.RUnlock()
	if reg, ok := rs.regs[name]; ok {
		return reg.content, reg.linewise
	}
	return "", false
}

// Set writes register name. An uppercase letter appends to its lowercase
// register; "_" discards and "." cannot be written.
func (rs *RegisterStore) Set(name rune, content string, linewise bool) {
	if name == '_' || name == '.' {
		return
	}
	if cb := rs.systemClipboard(name); cb != nil {
		_ = cb.Set(content)
		return
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if name >= 'A' && name <= 'Z' {
		reg := rs.regs[unicode.ToLower(name)]
		if reg.linewise {
			reg.content += "\n"
		}
		reg.content += content
		return
	}
	rs.store(name, content, linewise)
}

// SetChange records text removed by a change. Characterwise text within one
// line goes to "-"; anything else shifts "1" through "9" down and lands in
// "1". The unnamed register always receives it.
func (rs *RegisterStore) SetChange(content string, linewise bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !linewise && !strings.Contains(content, "\n") {
		rs.store('-', content, false)
	} else {
		for n := '9'; n > '1'; n-- {
			*rs.regs[n] = *rs.regs[n-1]
		}
		rs.store('1', content, linewise)
	}
	rs.store('"', content, linewise)
}

// SetLastInserted updates ".".
func (rs *RegisterStore) SetLastInserted(content string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.store('.', content, false)
}

func (rs *RegisterStore) store(name rune, content string, linewise bool) {
	if reg, ok := rs.regs[name]; ok {
		reg.content, reg.linewise = content, linewise
	}
}

// IsValidRegister reports whether name can follow a '"' prefix.
func IsValidRegister(name rune) bool {
	switch {
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z', name >= '0' && name <= '9':
		return true
	}
	return strings.ContainsRune(`"-_.+*`, name)
}

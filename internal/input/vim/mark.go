package vim

import (
	"sync"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
)

// Mark names maintained by insert sessions.
const (
	// MarkLastInsert is where insert mode was last left (^).
	MarkLastInsert = '^'

	// MarkChangeStart is the start of the last change ([).
	MarkChangeStart = '['

	// MarkChangeEnd is the end of the last change (]).
	MarkChangeEnd = ']'
)

// MarkStore holds named buffer positions.
type MarkStore struct {
	mu    sync.RWMutex
	marks map[rune]buffer.Point
}

// NewMarkStore creates an empty mark store.
func NewMarkStore() *MarkStore {
	return &MarkStore{marks: make(map[rune]buffer.Point)}
}

// Set records p under name. Invalid names are ignored.
func (ms *MarkStore) Set(name rune, p buffer.Point) {
	if !IsValidMark(name) {
		return
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.marks[name] = p
}

// Get returns the position stored under name.
func (ms *MarkStore) Get(name rune) (buffer.Point, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	p, ok := ms.marks[name]
	return p, ok
}

// IsValidMark reports whether name is a settable mark.
func IsValidMark(name rune) bool {
	switch {
	case name >= 'a' && name <= 'z':
		return true
	case name == MarkLastInsert, name == MarkChangeStart, name == MarkChangeEnd:
		return true
	default:
		return false
	}
}

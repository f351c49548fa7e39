package input

import (
	"sort"
	"sync"
)

// Hook observes keystrokes around handling.
type Hook interface {
	// PreKey runs before k is handled in mode. Returning true consumes k.
	PreKey(k Key, mode string) bool

	// PostKey runs after k is handled. mode is the mode after handling.
	PostKey(k Key, mode string, err error)
}

// HookPriority orders hooks; lower runs first.
type HookPriority int

const (
	HookPriorityHigh   HookPriority = -100
	HookPriorityNormal HookPriority = 0
	HookPriorityLow    HookPriority = 100
)

type hookEntry struct {
	id       uint64
	priority HookPriority
	hook     Hook
}

// HookChain is an ordered set of hooks.
type HookChain struct {
	mu     sync.RWMutex
	hooks  []hookEntry
	nextID uint64
}

// NewHookChain creates an empty chain.
func NewHookChain() *HookChain {
	return &HookChain{}
}

// Add registers hook and returns a function that removes it. Hooks with
// equal priority run in registration order.
func (c *HookChain) Add(hook Hook, priority HookPriority) (remove func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.hooks = append(c.hooks, hookEntry{id: id, priority: priority, hook: hook})
	sort.SliceStable(c.hooks, func(i, j int) bool {
		return c.hooks[i].priority < c.hooks[j].priority
	})
	return func() { c.remove(id) }
}

// Len returns the number of registered hooks.
func (c *HookChain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.hooks)
}

func (c *HookChain) remove(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.hooks {
		if e.id == id {
			c.hooks = append(c.hooks[:i:i], c.hooks[i+1:]...)
			return
		}
	}
}

func (c *HookChain) snapshot() []hookEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]hookEntry(nil), c.hooks...)
}

func (c *HookChain) pre(k Key, mode string) bool {
	for _, e := range c.snapshot() {
		if e.hook.PreKey(k, mode) {
			return true
		}
	}
	return false
}

func (c *HookChain) post(k Key, mode string, err error) {
	for _, e := range c.snapshot() {
		e.hook.PostKey(k, mode, err)
	}
}

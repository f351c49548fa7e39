package mode

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// ErrUnknownMode is returned when activating a mode that was never
// registered.
var ErrUnknownMode = errors.New("unknown mode")

// Manager owns the active mode and runs transitions between registered
// modes.
type Manager struct {
	mu sync.RWMutex

	modes   map[string]Mode
	current Mode
	submode string

	preempt []*subscription
	changed []*subscription
	nextSub uint64
}

// Disposable is returned by observer registrations.
type Disposable interface {
	// Dispose unregisters the observer. Calling it twice is harmless.
	Dispose()
	Disposed() bool
}

type subscription struct {
	id       uint64
	fn       func(Transition)
	list     *[]*subscription
	mgr      *Manager
	disposed atomic.Bool
}

func (s *subscription) Dispose() {
	if s.disposed.Swap(true) {
		return
	}
	s.mgr.mu.Lock()
	defer s.mgr.mu.Unlock()
	*s.list = slices.DeleteFunc(*s.list, func(o *subscription) bool { return o.id == s.id })
}

func (s *subscription) Disposed() bool {
	return s.disposed.Load()
}

// NewManager returns a manager with no modes registered.
func NewManager() *Manager {
	return &Manager{modes: make(map[string]Mode)}
}

// Register adds mode, replacing any mode with the same name.
func (m *Manager) Register(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[mode.Name()] = mode
}

// CurrentName returns the active mode's name, or "" before SetInitialMode.
func (m *Manager) CurrentName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// Submode returns the submode of the active mode.
func (m *Manager) Submode() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.submode
}

// IsMode reports whether name is the active mode.
func (m *Manager) IsMode(name string) bool {
	return m.CurrentName() == name
}

// SetInitialMode makes name active without running any transition
// observers.
func (m *Manager) SetInitialMode(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mode, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	m.current, m.submode = mode, SubmodeNone
	return mode.Enter(Transition{To: name})
}

// Switch activates name with no submode.
func (m *Manager) Switch(name string) error {
	return m.Activate(name, SubmodeNone)
}

// Activate makes name the active mode with the given submode.
//
// Leaving a mode runs the preempting observers first, then the old mode's
// Exit, then the new mode's Enter, then the change observers. Activating
// the active mode again only replaces its submode.
func (m *Manager) Activate(name, submode string) error {
	m.mu.RLock()
	next, ok := m.modes[name]
	t := Transition{To: name, Submode: submode, FromSubmode: m.submode}
	old := m.current
	if old != nil {
		t.From = old.Name()
	}
	preempt := slices.Clone(m.preempt)
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	if old != nil && t.From == name {
		m.mu.Lock()
		m.submode = submode
		m.mu.Unlock()
		return nil
	}

	notify(preempt, t)

	m.mu.Lock()
	if old != nil {
		if err := old.Exit(t); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("exit %s: %w", t.From, err)
		}
	}
	if err := next.Enter(t); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("enter %s: %w", name, err)
	}
	m.current, m.submode = next, submode
	changed := slices.Clone(m.changed)
	m.mu.Unlock()

	notify(changed, t)
	return nil
}

func notify(subs []*subscription, t Transition) {
	for _, sub := range subs {
		if !sub.Disposed() {
			sub.fn(t)
		}
	}
}

// PreemptWillDeactivate registers fn to run before the active mode is
// left, ahead of the mode's own Exit. Observers run in registration order
// outside the manager lock, so they may query the manager.
func (m *Manager) PreemptWillDeactivate(fn func(Transition)) Disposable {
	return m.subscribe(&m.preempt, fn)
}

// OnChange registers fn to run after every completed transition.
func (m *Manager) OnChange(fn func(Transition)) Disposable {
	return m.subscribe(&m.changed, fn)
}

func (m *Manager) subscribe(list *[]*subscription, fn func(Transition)) Disposable {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSub++
	sub := &subscription{id: m.nextSub, fn: fn, list: list, mgr: m}
	*list = append(*list, sub)
	return sub
}

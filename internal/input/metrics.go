package input

import "sync/atomic"

// Metrics counts handled keys.
type Metrics struct {
	keys     atomic.Uint64
	consumed atomic.Uint64
	commands atomic.Uint64
	repeats  atomic.Uint64
	invalid  atomic.Uint64
}

// NewMetrics creates zeroed counters.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	// Keys handled, excluding those consumed by hooks.
	Keys uint64 `yaml:"keys"`
	// Consumed keys were swallowed by a hook.
	Consumed uint64 `yaml:"consumed"`
	// Commands that began an insert session.
	Commands uint64 `yaml:"commands"`
	Repeats  uint64 `yaml:"repeats"`
	// Invalid key sequences in normal or visual mode.
	Invalid uint64 `yaml:"invalid"`
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Keys:     m.keys.Load(),
		Consumed: m.consumed.Load(),
		Commands: m.commands.Load(),
		Repeats:  m.repeats.Load(),
		Invalid:  m.invalid.Load(),
	}
}

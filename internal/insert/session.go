package insert

import (
	"cmp"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
	"github.com/dshills/dotrepeat/internal/input/mode"
	"go.opentelemetry.io/otel/trace"
)

// Session is the state of one insert operation, from Begin until insert
// mode is left. Variant hooks receive it.
type Session struct {
	id      string
	variant *Variant
	req     Request
	host    Host

	mode    string
	submode string
	target  TargetResult

	cps            *CheckpointManager
	insertionCount int
	textByOperator string
	origin         Point
	originMarker   *buffer.Marker

	sub     mode.Disposable
	spanCtx trace.SpanContext
}

// ID returns the session identifier used in logs and spans.
func (s *Session) ID() string { return s.id }

// Variant returns the variant being run.
func (s *Session) Variant() *Variant { return s.variant }

// Editor returns the host editor.
func (s *Session) Editor() Editor { return s.host.Editor }

// Marks returns the host mark store, which may be nil.
func (s *Session) Marks() Marks { return s.host.Marks }

// Mode returns the mode the session was started from.
func (s *Session) Mode() string { return s.mode }

// Submode returns the submode the session was started from.
func (s *Session) Submode() string { return s.submode }

// Target returns what the target selector reported.
func (s *Session) Target() TargetResult { return s.target }

// Repeated reports whether the session replays a previous one.
func (s *Session) Repeated() bool { return s.req.Repeated }

// Setting returns a boolean setting, falling back to the defaults.
func (s *Session) Setting(name string) bool {
	if s.host.Settings == nil {
		return defaultSettings[name]
	}
	return s.host.Settings.Bool(name)
}

func (s *Session) inVisual() bool {
	return s.mode == mode.ModeVisual
}

// targetName returns the target to select, or "" when the variant names
// none and the request supplies none.
func (s *Session) targetName() string {
	if !s.variant.RequireTarget && s.variant.Target == "" {
		return ""
	}
	if s.inVisual() {
		return TargetCurrentSelection
	}
	if s.req.Target != "" {
		return s.req.Target
	}
	return s.variant.Target
}

// selectTarget runs the target selector and the variant's after-select
// hook. It returns ErrTargetNotSelected when nothing was selected.
func (s *Session) selectTarget() error {
	name := s.targetName()
	if name == "" {
		if s.variant.RequireTarget {
			return ErrTargetNotSelected
		}
		return nil
	}
	if s.host.Targets == nil {
		return ErrTargetNotSelected
	}
	res, ok := s.host.Targets.SelectTarget(s.host.Editor, TargetRequest{
		Name:           name,
		Wise:           s.variant.Wise,
		Occurrence:     s.variant.Occurrence,
		OccurrenceType: s.variant.OccurrenceType,
		Count:          cmp.Or(s.req.TargetCount, s.req.Count),
		Mode:           s.mode,
		Submode:        s.submode,
	})
	if !ok {
		return ErrTargetNotSelected
	}
	s.target = res
	if s.variant.AfterSelect != nil {
		return s.variant.AfterSelect(s)
	}
	return nil
}

func (s *Session) adjust() error {
	if s.variant.Adjust == nil {
		return nil
	}
	return s.variant.Adjust(s)
}

func (s *Session) prepare() error {
	if s.variant.Prepare == nil {
		return nil
	}
	return s.variant.Prepare(s)
}

func (s *Session) replayStrategy() ReplayStrategy {
	if s.variant.Replay != nil {
		return s.variant.Replay
	}
	return ReplayEngine{}
}

// release frees everything the session holds in the editor.
func (s *Session) release() {
	if s.sub != nil {
		s.sub.Dispose()
	}
	if s.originMarker != nil {
		s.originMarker.Destroy()
		s.originMarker = nil
	}
	s.cps.Release()
}

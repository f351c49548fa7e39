package script

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dshills/dotrepeat/internal/engine"
	"github.com/dshills/dotrepeat/internal/engine/buffer"
	"github.com/dshills/dotrepeat/internal/input"
	"github.com/dshills/dotrepeat/internal/input/mode"
	"github.com/dshills/dotrepeat/internal/input/vim"
	"github.com/dshills/dotrepeat/internal/insert"
	"github.com/dshills/dotrepeat/internal/target"
	"go.opentelemetry.io/otel/trace"
)

// defaultReport lists the registers every result includes.
var defaultReport = []string{".", "\"", "-", "1"}

// Result is the editor state after a run.
type Result struct {
	Text      string                `yaml:"text"`
	Cursors   []Position            `yaml:"cursors"`
	Mode      string                `yaml:"mode"`
	Submode   string                `yaml:"submode,omitempty"`
	Registers map[string]string     `yaml:"registers"`
	Marks     map[string]Position   `yaml:"marks,omitempty"`
	UndoCount int                   `yaml:"undoCount"`
	Keys      input.MetricsSnapshot `yaml:"keys"`
}

// Runner executes scripts.
type Runner struct {
	logger     *slog.Logger
	tracer     trace.Tracer
	settings   insert.Settings
	clipboard  vim.ClipboardProvider
	maxCount   int
	autoIndent bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger handed to the insert controller.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithTracer sets the tracer handed to the insert controller.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Runner) { r.tracer = tracer }
}

// WithSettings sets the base settings. Script settings override them.
func WithSettings(settings insert.Settings) Option {
	return func(r *Runner) { r.settings = settings }
}

// WithClipboard backs the + and * registers.
func WithClipboard(clipboard vim.ClipboardProvider) Option {
	return func(r *Runner) { r.clipboard = clipboard }
}

// WithMaxInsertionCount overrides the counted insertion cap.
func WithMaxInsertionCount(n int) Option {
	return func(r *Runner) { r.maxCount = n }
}

// WithAutoIndent sets the editor auto-indent default. A script's own
// autoIndent wins.
func WithAutoIndent(enabled bool) Option {
	return func(r *Runner) { r.autoIndent = enabled }
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// overlay answers script settings first, then the base settings.
type overlay struct {
	base      insert.Settings
	overrides map[string]bool
}

func (o overlay) Bool(name string) bool {
	if v, ok := o.overrides[name]; ok {
		return v
	}
	if o.base == nil {
		return insert.StaticSettings(nil).Bool(name)
	}
	return o.base.Bool(name)
}

// session is the editor a script runs against.
type session struct {
	ed    *engine.Engine
	modes *mode.Manager
	regs  *vim.RegisterStore
	marks *vim.MarkStore
	ctrl  *insert.Controller
	keys  *input.Handler
	log   *slog.Logger
}

func (r *Runner) newSession(sc *Script) (*session, error) {
	autoIndent := r.autoIndent
	if sc.AutoIndent != nil {
		autoIndent = *sc.AutoIndent
	}
	opts := []engine.Option{engine.WithContent(sc.Text), engine.WithAutoIndent(autoIndent)}
	if sc.ReadOnly {
		opts = append(opts, engine.WithReadOnly())
	}
	ed := engine.New(opts...)
	if len(sc.Cursors) > 0 {
		ed.SetCursorPositions(points(ed, sc.Cursors))
	}

	logger := r.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	modes := mode.NewManager()
	modes.Register(mode.NewNormalMode())
	modes.Register(mode.NewVisualMode())
	modes.Register(mode.NewInsertMode(func(mode.Transition) error {
		insert.MoveCursorsLeft(ed)
		return nil
	}))
	if err := modes.SetInitialMode(mode.ModeNormal); err != nil {
		return nil, err
	}
	modes.OnChange(func(t mode.Transition) {
		logger.Debug("mode changed", "from", t.From, "to", t.To, "submode", t.Submode)
	})

	regs := vim.NewRegisterStore()
	if r.clipboard != nil {
		regs.SetClipboard(r.clipboard)
	}
	marks := vim.NewMarkStore()

	ctrlOpts := []insert.Option{insert.WithLogger(logger), insert.WithMaxInsertionCount(r.maxCount)}
	if r.tracer != nil {
		ctrlOpts = append(ctrlOpts, insert.WithTracer(r.tracer))
	}
	ctrl := insert.New(insert.Host{
		Editor:    ed,
		Modes:     modes,
		Registers: regs,
		Marks:     marks,
		Targets:   target.NewSelector(),
		Settings:  overlay{base: r.settings, overrides: sc.Settings},
	}, ctrlOpts...)

	hooks := input.NewHookChain()
	hooks.Add(keyLogger{log: logger}, input.HookPriorityLow)

	return &session{
		ed:    ed,
		modes: modes,
		regs:  regs,
		marks: marks,
		ctrl:  ctrl,
		keys:  input.NewHandler(ed, modes, ctrl, input.WithHooks(hooks)),
		log:   logger,
	}, nil
}

// Run executes every step of sc. On failure the result holds the state
// reached before the failing step.
func (r *Runner) Run(ctx context.Context, sc *Script) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	s, err := r.newSession(sc)
	if err != nil {
		return nil, err
	}
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return s.result(sc.Report), err
		}
		action := step.Action()
		s.log.Debug("script step", "index", i+1, "action", action)
		if err := s.exec(ctx, action, step); err != nil {
			return s.result(sc.Report), &StepError{Index: i, Action: action, Err: err}
		}
	}
	return s.result(sc.Report), nil
}

func (s *session) exec(ctx context.Context, action string, step Step) error {
	switch action {
	case "begin":
		return s.ctrl.Begin(ctx, insert.Request{
			Variant:     step.Begin,
			Count:       step.Count,
			Target:      step.Target,
			TargetCount: step.TargetCount,
		})
	case "keys":
		return s.typeKeys(ctx, step.Keys)
	case "type":
		return s.keys.Type(*step.Type)
	case "backspace":
		if !s.modes.IsMode(mode.ModeInsert) {
			return ErrNotInsertMode
		}
		for n := 0; n < step.Backspace; n++ {
			if err := s.keys.HandleKey(ctx, input.Key{Special: input.KeyBackspace}); err != nil {
				return err
			}
		}
		return nil
	case "escape":
		return s.keys.HandleKey(ctx, input.Key{Special: input.KeyEscape})
	case "repeat":
		for n := 0; n < step.Repeat; n++ {
			if err := s.ctrl.Repeat(ctx); err != nil {
				return err
			}
		}
		return nil
	case "undo":
		for n := 0; n < step.Undo; n++ {
			if err := s.ed.Undo(); err != nil {
				return err
			}
		}
		return nil
	case "redo":
		for n := 0; n < step.Redo; n++ {
			if err := s.ed.Redo(); err != nil {
				return err
			}
		}
		return nil
	case "cursor":
		s.ed.SetCursorPositions(points(s.ed, step.Cursor))
		return nil
	case "select":
		ranges := make([]buffer.PointRange, len(step.Select))
		for i, sp := range step.Select {
			ranges[i] = buffer.NewPointRange(s.ed.ClipPoint(point(sp.Start)), s.ed.ClipPoint(point(sp.End)))
		}
		s.ed.SetSelectionRanges(ranges)
		return nil
	case "visual":
		return s.visual(step.Visual)
	case "fold":
		if !s.ed.Fold(*step.Fold) {
			return fmt.Errorf("row %d is not inside a fold", *step.Fold)
		}
		return nil
	case "unfold":
		s.ed.UnfoldAll()
		return nil
	case "copy":
		from, to := []rune(step.Copy.From)[0], []rune(step.Copy.To)[0]
		text, linewise := s.regs.Get(from)
		s.regs.Set(to, text, linewise)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStep, action)
}

// keyLogger logs every handled key at debug level.
type keyLogger struct {
	log *slog.Logger
}

func (keyLogger) PreKey(input.Key, string) bool { return false }

func (l keyLogger) PostKey(k input.Key, after string, err error) {
	if err != nil {
		l.log.Debug("key failed", "key", k.String(), "mode", after, "err", err)
		return
	}
	l.log.Debug("key", "key", k.String(), "mode", after)
}

// typeKeys handles keys in notation form. A command left unfinished is
// an error.
func (s *session) typeKeys(ctx context.Context, keys string) error {
	if err := s.keys.HandleKeys(ctx, keys); err != nil {
		return err
	}
	if pending := s.keys.PendingKeys(); pending != "" {
		s.keys.Reset()
		return fmt.Errorf("%w: incomplete %q", vim.ErrInvalidKeys, pending)
	}
	return nil
}

func (s *session) visual(submode string) error {
	switch submode {
	case mode.SubmodeCharacterwise, mode.SubmodeLinewise, mode.SubmodeBlockwise:
		return s.modes.Activate(mode.ModeVisual, submode)
	case "off":
		return s.modes.Switch(mode.ModeNormal)
	}
	return fmt.Errorf("%w: %q", ErrUnknownVisual, submode)
}

func (s *session) result(report []string) *Result {
	res := &Result{
		Text:      s.ed.Text(),
		Mode:      s.modes.CurrentName(),
		Submode:   s.modes.Submode(),
		Registers: make(map[string]string),
		Marks:     make(map[string]Position),
		UndoCount: s.ed.UndoCount(),
		Keys:      s.keys.Metrics().Snapshot(),
	}
	for _, p := range s.ed.CursorPositions() {
		res.Cursors = append(res.Cursors, Position{Line: p.Line, Col: p.Column})
	}
	for _, name := range append(append([]string(nil), defaultReport...), report...) {
		if r := []rune(name); len(r) == 1 {
			res.Registers[name], _ = s.regs.Get(r[0])
		}
	}
	for _, name := range []rune{vim.MarkLastInsert, vim.MarkChangeStart, vim.MarkChangeEnd} {
		if p, ok := s.marks.Get(name); ok {
			res.Marks[string(name)] = Position{Line: p.Line, Col: p.Column}
		}
	}
	return res
}

func point(p Position) buffer.Point {
	return buffer.Point{Line: p.Line, Column: p.Col}
}

func points(ed *engine.Engine, ps []Position) []buffer.Point {
	out := make([]buffer.Point, len(ps))
	for i, p := range ps {
		out[i] = ed.ClipPoint(point(p))
	}
	return out
}

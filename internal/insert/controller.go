package insert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dshills/dotrepeat/internal/input/mode"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation name of the default tracer.
const TracerName = "github.com/dshills/dotrepeat/internal/insert"

// Request starts an insert session.
type Request struct {
	// Variant names a catalog entry.
	Variant string

	// Count is the typed count, 0 when none was typed.
	Count int

	// TargetCount is the count given to the target motion. When 0 the
	// motion takes Count.
	TargetCount int

	// Target overrides the variant's default target.
	Target string

	// Repeated replays the last captured change instead of entering
	// insert mode.
	Repeated bool
}

// lastOperation is what a repeat replays.
type lastOperation struct {
	req    Request
	change *ChangeRecord
	origin Point
}

// Controller enters insert mode, captures what was typed when insert mode
// ends and replays it on repeat. One controller serves one editor.
type Controller struct {
	mu sync.Mutex

	host    Host
	catalog *Catalog
	policy  CountPolicy
	logger  *slog.Logger
	tracer  trace.Tracer

	active       *Session
	last         *lastOperation
	lastInserted string
	err          error
}

// New creates a controller for host.
func New(host Host, opts ...Option) *Controller {
	c := &Controller{
		host:    host,
		catalog: NewCatalog(),
		policy:  CountPolicy{Max: MaxInsertionCount},
		logger:  slog.New(slog.DiscardHandler),
		tracer:  noop.NewTracerProvider().Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog returns the variant catalog.
func (c *Controller) Catalog() *Catalog {
	return c.catalog
}

// Active reports whether a session is waiting for insert mode to end.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil
}

// LastChange returns a copy of the change captured by the last finished
// session, or nil.
func (c *Controller) LastChange() *ChangeRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return nil
	}
	return c.last.change.clone()
}

// LastInsertedText returns the text typed in the last finished session.
func (c *Controller) LastInsertedText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastInserted
}

// Err returns the host faults hit while finishing the last session.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Repeat replays the last finished operation.
func (c *Controller) Repeat(ctx context.Context) error {
	c.mu.Lock()
	last := c.last
	c.mu.Unlock()
	if last == nil {
		return ErrNoLastOperation
	}
	req := last.req
	req.Repeated = true
	return c.Begin(ctx, req)
}

// Begin runs req. A fresh request leaves the editor in insert mode; the
// session finishes when insert mode is left. A repeated request completes
// before returning.
func (c *Controller) Begin(ctx context.Context, req Request) error {
	v, err := c.catalog.Lookup(req.Variant)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.active != nil {
		c.mu.Unlock()
		return ErrSessionActive
	}
	last := c.last
	c.mu.Unlock()

	if req.Repeated && last == nil {
		return ErrNoLastOperation
	}

	s := &Session{
		id:      uuid.NewString(),
		variant: v,
		req:     req,
		host:    c.host,
		mode:    c.host.Modes.CurrentName(),
		submode: c.host.Modes.Submode(),
		cps:     NewCheckpointManager(c.host.Editor),
	}

	if req.Repeated {
		return c.repeat(ctx, s, last)
	}
	return c.begin(ctx, s)
}

func (c *Controller) spanAttrs(s *Session) trace.SpanStartEventOption {
	return trace.WithAttributes(
		attribute.String("insert.variant", s.variant.Name),
		attribute.String("insert.session", s.id),
		attribute.Int("insert.count", s.req.Count),
	)
}

func (c *Controller) begin(ctx context.Context, s *Session) (err error) {
	_, span := c.tracer.Start(ctx, "insert.begin", c.spanAttrs(s))
	defer span.End()
	s.spanCtx = span.SpanContext()

	log := c.logger.With("session", s.id, "variant", s.variant.Name)
	defer func() {
		if err != nil {
			s.release()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Debug("insert session aborted", "error", err)
		}
	}()

	ed := c.host.Editor
	if s.variant.MarksOrigin && s.Setting(SettingGroupChanges) {
		s.originMarker = ed.MarkPosition(ed.SelectionHead(0))
	}
	if err := s.adjust(); err != nil {
		return fmt.Errorf("adjust: %w", err)
	}
	if s.submode != mode.SubmodeBlockwise {
		ed.NormalizeSelections()
	}
	s.cps.Open(PurposeUndo)
	if err := s.selectTarget(); err != nil {
		return err
	}

	c.mu.Lock()
	if c.active != nil {
		c.mu.Unlock()
		return ErrSessionActive
	}
	c.active = s
	c.mu.Unlock()
	defer func() {
		if err != nil {
			c.mu.Lock()
			c.active = nil
			c.mu.Unlock()
		}
	}()
	s.sub = c.host.Modes.PreemptWillDeactivate(func(t mode.Transition) {
		c.onInsertModeExit(s, t)
	})

	if err := s.prepare(); err != nil {
		return fmt.Errorf("prepare: %w", err)
	}

	s.insertionCount = c.policy.insertionCount(s.variant.SupportCount, s.req.Count)
	if s.insertionCount > 0 {
		change, err := s.cps.Diff(PurposeUndo)
		if err != nil {
			return err
		}
		if change != nil {
			s.textByOperator = change.NewText
		}
	}

	s.cps.Open(PurposeInsert)
	s.origin = earliestCursor(ed)

	if err := c.host.Modes.Activate(mode.ModeInsert, s.variant.FinalSubmode); err != nil {
		return fmt.Errorf("activate insert mode: %w", err)
	}
	log.Debug("insert session begun", "count", s.req.Count, "insertions", s.insertionCount)
	return nil
}

// onInsertModeExit finishes s the first time insert mode is left.
func (c *Controller) onInsertModeExit(s *Session, t mode.Transition) {
	if !t.Leaves(mode.ModeInsert) {
		return
	}
	s.sub.Dispose()

	c.mu.Lock()
	if c.active != s {
		c.mu.Unlock()
		return
	}
	c.active = nil
	c.mu.Unlock()

	_, span := c.tracer.Start(context.Background(), "insert.finalize",
		c.spanAttrs(s), trace.WithLinks(trace.Link{SpanContext: s.spanCtx}))
	defer span.End()

	change, err := c.finalize(s)

	c.mu.Lock()
	c.last = &lastOperation{req: s.req, change: change.clone(), origin: s.origin}
	c.lastInserted = lastText(change)
	c.err = err
	c.mu.Unlock()

	log := c.logger.With("session", s.id, "variant", s.variant.Name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("insert session finished with host faults", "error", err)
		return
	}
	log.Debug("insert session finished", "typed", lastText(change), "insertions", s.insertionCount)
}

func (c *Controller) finalize(s *Session) (*ChangeRecord, error) {
	defer s.release()

	ed := c.host.Editor
	var errs []error

	if c.host.Marks != nil {
		c.host.Marks.Set('^', ed.SelectionHead(0))
	}

	change, err := s.cps.Diff(PurposeInsert)
	if err != nil {
		errs = append(errs, err)
	}
	if change != nil && c.host.Marks != nil {
		c.host.Marks.Set('[', change.Start)
		c.host.Marks.Set(']', change.End())
	}
	typed := lastText(change)
	if c.host.Registers != nil {
		c.host.Registers.SetLastInserted(typed)
	}

	text := s.textByOperator + typed
	for n := 0; n < s.insertionCount; n++ {
		for i := 0; i < ed.SelectionCount(); i++ {
			if err := ed.InsertText(i, text, true); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if s.Setting(SettingClearMultipleCursors) {
		ed.ClearSelections()
	}

	if s.Setting(SettingGroupChanges) {
		marker := s.originMarker
		s.originMarker = nil
		if err := s.cps.Group(PurposeUndo, marker); err != nil {
			errs = append(errs, err)
		}
	}
	return change, errors.Join(errs...)
}

func (c *Controller) repeat(ctx context.Context, s *Session, last *lastOperation) (err error) {
	_, span := c.tracer.Start(ctx, "insert.repeat", c.spanAttrs(s))
	defer span.End()
	defer s.release()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	ed := c.host.Editor
	if err := s.adjust(); err != nil {
		return fmt.Errorf("adjust: %w", err)
	}
	s.cps.Open(PurposeUndo)
	if err := s.selectTarget(); err != nil {
		return err
	}
	if err := s.prepare(); err != nil {
		return fmt.Errorf("prepare: %w", err)
	}

	strategy := s.replayStrategy()
	for i := 0; i < ed.SelectionCount(); i++ {
		if err := strategy.Replay(ed, i, last.change, last.origin); err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		moveCursorLeft(ed, i)
	}

	if err := s.cps.Group(PurposeUndo, nil); err != nil {
		return err
	}
	if s.Setting(SettingClearMultipleCursors) {
		ed.ClearSelections()
	}
	c.logger.Debug("insert operation repeated", "session", s.id, "variant", s.variant.Name)
	return nil
}

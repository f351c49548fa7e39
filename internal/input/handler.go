package input

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
	"github.com/dshills/dotrepeat/internal/input/mode"
	"github.com/dshills/dotrepeat/internal/input/vim"
	"github.com/dshills/dotrepeat/internal/insert"
	"github.com/rivo/uniseg"
)

// Editor is the text surface keys are typed into.
type Editor interface {
	SelectionCount() int
	SelectionHead(i int) buffer.Point
	LineText(row int) string
	SetSelectionRange(i int, r buffer.PointRange, reversed bool)
	InsertText(i int, text string, autoIndent bool) error
	Backspace() error
}

// Modes reports and switches the editor mode.
type Modes interface {
	CurrentName() string
	Submode() string
	Switch(name string) error
}

// Controller begins and repeats insert sessions.
type Controller interface {
	Begin(ctx context.Context, req insert.Request) error
	Repeat(ctx context.Context) error
	Err() error
}

// Handler routes keystrokes by mode. It is safe for concurrent use; keys
// are handled one at a time.
type Handler struct {
	mu      sync.Mutex
	ed      Editor
	modes   Modes
	ctrl    Controller
	parser  *vim.Parser
	hooks   *HookChain
	metrics *Metrics
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHooks installs a hook chain.
func WithHooks(hooks *HookChain) HandlerOption {
	return func(h *Handler) { h.hooks = hooks }
}

// WithMetrics records key counters into m.
func WithMetrics(m *Metrics) HandlerOption {
	return func(h *Handler) { h.metrics = m }
}

// NewHandler creates a handler.
func NewHandler(ed Editor, modes Modes, ctrl Controller, opts ...HandlerOption) *Handler {
	h := &Handler{
		ed:      ed,
		modes:   modes,
		ctrl:    ctrl,
		parser:  vim.NewParser(),
		hooks:   NewHookChain(),
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Metrics returns the handler's counters.
func (h *Handler) Metrics() *Metrics {
	return h.metrics
}

// PendingKeys returns the keys of an unfinished normal-mode command.
func (h *Handler) PendingKeys() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.parser.PendingKeys()
}

// Reset discards an unfinished normal-mode command.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.parser.Reset()
}

// HandleKeys parses notation and handles each key, stopping at the first
// error.
func (h *Handler) HandleKeys(ctx context.Context, notation string) error {
	keys, err := ParseNotation(notation)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h.HandleKey(ctx, k); err != nil {
			return fmt.Errorf("key %s: %w", k, err)
		}
	}
	return nil
}

// HandleKey handles one keystroke.
func (h *Handler) HandleKey(ctx context.Context, k Key) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := h.modes.CurrentName()
	if h.hooks.pre(k, name) {
		h.metrics.consumed.Add(1)
		return nil
	}
	h.metrics.keys.Add(1)

	var err error
	if name == mode.ModeInsert {
		err = h.insertKey(k)
	} else {
		err = h.commandKey(ctx, k, name)
	}
	h.hooks.post(k, h.modes.CurrentName(), err)
	return err
}

// Type types text at every cursor, one grapheme cluster at a time.
func (h *Handler) Type(text string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.modes.CurrentName() != mode.ModeInsert {
		return ErrNotInsertMode
	}
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if err := h.typeGrapheme(g.Str()); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) commandKey(ctx context.Context, k Key, name string) error {
	if k.Special == KeyEscape {
		h.parser.Reset()
		if name == mode.ModeVisual {
			return h.modes.Switch(mode.ModeNormal)
		}
		return nil
	}
	if k.Special != KeyRune {
		h.parser.Reset()
		h.metrics.invalid.Add(1)
		return fmt.Errorf("%w: %s in %s mode", vim.ErrInvalidKeys, k, name)
	}

	pending := h.parser.PendingKeys()
	res := h.parser.Feed(k.Rune)
	switch res.Status {
	case vim.StatusInvalid:
		h.metrics.invalid.Add(1)
		return fmt.Errorf("%w: %q", vim.ErrInvalidKeys, pending+string(k.Rune))
	case vim.StatusComplete:
		cmd := res.Command
		if cmd.Repeat {
			h.metrics.repeats.Add(1)
			return h.ctrl.Repeat(ctx)
		}
		h.metrics.commands.Add(1)
		return h.ctrl.Begin(ctx, insert.Request{Variant: cmd.Variant, Count: cmd.Count, Target: cmd.Target})
	}
	return nil
}

func (h *Handler) insertKey(k Key) error {
	switch k.Special {
	case KeyEscape:
		if err := h.modes.Switch(mode.ModeNormal); err != nil {
			return err
		}
		if err := h.ctrl.Err(); err != nil {
			return fmt.Errorf("finishing insert: %w", err)
		}
		return nil
	case KeyBackspace:
		return h.ed.Backspace()
	case KeyEnter:
		return h.typeGrapheme("\n")
	case KeyTab:
		return h.typeGrapheme("\t")
	}
	return h.typeGrapheme(string(k.Rune))
}

// typeGrapheme inserts ch at every cursor. In the replace submode ch
// overwrites the grapheme under the cursor unless it is a newline.
func (h *Handler) typeGrapheme(ch string) error {
	replace := h.modes.Submode() == mode.SubmodeReplace && ch != "\n"
	for i := 0; i < h.ed.SelectionCount(); i++ {
		if replace {
			h.selectUnderCursor(i)
		}
		if err := h.ed.InsertText(i, ch, false); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) selectUnderCursor(i int) {
	head := h.ed.SelectionHead(i)
	line := h.ed.LineText(head.Line)
	if head.Column >= len(line) {
		return
	}
	end := buffer.Point{Line: head.Line, Column: buffer.NextGraphemeColumn(line, head.Column)}
	h.ed.SetSelectionRange(i, buffer.PointRange{Start: head, End: end}, false)
}

package insert_test

import (
	"context"
	"testing"

	"github.com/dshills/dotrepeat/internal/engine"
	"github.com/dshills/dotrepeat/internal/engine/buffer"
	"github.com/dshills/dotrepeat/internal/insert"
	"github.com/dshills/dotrepeat/internal/input/mode"
	"github.com/dshills/dotrepeat/internal/input/vim"
	"github.com/dshills/dotrepeat/internal/target"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t     *testing.T
	ed    *engine.Engine
	modes *mode.Manager
	regs  *vim.RegisterStore
	marks *vim.MarkStore
	ctrl  *insert.Controller
}

func newHarness(t *testing.T, content string, settings insert.Settings, opts ...insert.Option) *harness {
	t.Helper()
	ed := engine.New(engine.WithContent(content))
	modes := mode.NewManager()
	modes.Register(mode.NewNormalMode())
	modes.Register(mode.NewVisualMode())
	modes.Register(mode.NewInsertMode(func(mode.Transition) error {
		insert.MoveCursorsLeft(ed)
		return nil
	}))
	require.NoError(t, modes.SetInitialMode(mode.ModeNormal))

	h := &harness{
		t:     t,
		ed:    ed,
		modes: modes,
		regs:  vim.NewRegisterStore(),
		marks: vim.NewMarkStore(),
	}
	h.ctrl = insert.New(insert.Host{
		Editor:    ed,
		Modes:     modes,
		Registers: h.regs,
		Marks:     h.marks,
		Targets:   target.NewSelector(),
		Settings:  settings,
	}, opts...)
	return h
}

func at(line, col int) buffer.Point {
	return buffer.Point{Line: line, Column: col}
}

func (h *harness) begin(req insert.Request) {
	h.t.Helper()
	require.NoError(h.t, h.ctrl.Begin(context.Background(), req))
	require.True(h.t, h.modes.IsMode(mode.ModeInsert))
}

// typeText types text at every cursor, overwriting in the replace submode.
func (h *harness) typeText(text string) {
	h.t.Helper()
	replace := h.modes.Submode() == mode.SubmodeReplace
	for _, r := range text {
		for i := 0; i < h.ed.SelectionCount(); i++ {
			if replace && r != '\n' {
				head := h.ed.SelectionHead(i)
				line := h.ed.LineText(head.Line)
				if head.Column < len(line) {
					end := at(head.Line, buffer.NextGraphemeColumn(line, head.Column))
					h.ed.SetSelectionRange(i, buffer.PointRange{Start: head, End: end}, false)
				}
			}
			require.NoError(h.t, h.ed.InsertText(i, string(r), false))
		}
	}
}

func (h *harness) escape() {
	h.t.Helper()
	require.NoError(h.t, h.modes.Switch(mode.ModeNormal))
	require.NoError(h.t, h.ctrl.Err())
}

func (h *harness) register(name rune) string {
	text, _ := h.regs.Get(name)
	return text
}

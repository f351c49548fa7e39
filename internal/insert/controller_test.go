package insert_test

import (
	"context"
	"strings"
	"testing"

	"github.com/dshills/dotrepeat/internal/engine/buffer"
	"github.com/dshills/dotrepeat/internal/insert"
	"github.com/dshills/dotrepeat/internal/input/mode"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestAppendAtEndOfLine(t *testing.T) {
	h := newHarness(t, "foo", nil)

	h.begin(insert.Request{Variant: "insert-after-end-of-line"})
	require.Equal(t, at(0, 3), h.ed.SelectionHead(0))
	h.typeText("bar")
	h.escape()

	require.Equal(t, "foobar", h.ed.Text())
	require.Equal(t, "bar", h.register('.'))
	require.Equal(t, "bar", h.ctrl.LastInsertedText())
	require.Equal(t, at(0, 5), h.ed.SelectionHead(0))
	require.False(t, h.ctrl.Active())

	change := h.ctrl.LastChange()
	require.NotNil(t, change)
	require.Equal(t, at(0, 3), change.Start)
	require.Equal(t, buffer.Extent{Columns: 3}, change.NewExtent)
	require.True(t, change.OldExtent.IsZero())

	caret, ok := h.marks.Get('^')
	require.True(t, ok)
	require.Equal(t, at(0, 6), caret)
	start, _ := h.marks.Get('[')
	end, _ := h.marks.Get(']')
	require.Equal(t, at(0, 3), start)
	require.Equal(t, at(0, 6), end)
}

func TestCountedInsert(t *testing.T) {
	h := newHarness(t, "", nil)

	h.begin(insert.Request{Variant: "activate-insert-mode", Count: 3})
	h.typeText("x")
	h.escape()

	require.Equal(t, "xxx", h.ed.Text())
	require.Equal(t, "x", h.register('.'))
	require.Equal(t, 1, h.ed.UndoCount())

	require.NoError(t, h.ed.Undo())
	require.Equal(t, "", h.ed.Text())
}

func TestCountedInsertIsCapped(t *testing.T) {
	h := newHarness(t, "", nil, insert.WithMaxInsertionCount(4))

	h.begin(insert.Request{Variant: "activate-insert-mode", Count: 5555})
	h.typeText("a")
	h.escape()

	require.Equal(t, "aaaaa", h.ed.Text())
}

func TestRaisedCapIsClamped(t *testing.T) {
	h := newHarness(t, "", nil, insert.WithMaxInsertionCount(100000))

	h.begin(insert.Request{Variant: "activate-insert-mode", Count: 500})
	h.typeText("a")
	h.escape()

	require.Equal(t, strings.Repeat("a", insert.MaxInsertionCount+1), h.ed.Text())
}

func TestTargetCountIsSeparateFromInsertionCount(t *testing.T) {
	h := newHarness(t, "abcdef", nil)

	h.begin(insert.Request{
		Variant:     "insert-at-end-of-target",
		Target:      insert.TargetMoveRight,
		Count:       2,
		TargetCount: 3,
	})
	h.typeText("X")
	h.escape()

	require.Equal(t, "abcXXdef", h.ed.Text())
}

func TestMissingRequiredTargetLeavesTextAlone(t *testing.T) {
	h := newHarness(t, "foo bar", nil)

	err := h.ctrl.Begin(context.Background(), insert.Request{Variant: "change"})
	require.ErrorIs(t, err, insert.ErrTargetNotSelected)
	require.Equal(t, "foo bar", h.ed.Text())
	require.True(t, h.modes.IsMode(mode.ModeNormal))
	require.False(t, h.ctrl.Active())
}

func TestVisualCharacterwiseInsertAtStart(t *testing.T) {
	h := newHarness(t, "abcd\nefgh", nil)
	require.NoError(t, h.modes.Activate(mode.ModeVisual, mode.SubmodeCharacterwise))
	h.ed.SetSelectionRange(0, buffer.PointRange{Start: at(0, 1), End: at(1, 3)}, false)

	h.begin(insert.Request{Variant: "insert-at-start-of-target"})
	require.Equal(t, []buffer.Point{at(0, 1), at(1, 1)}, h.ed.CursorPositions())
	h.typeText("-")
	h.escape()

	require.Equal(t, "a-bcd\ne-fgh", h.ed.Text())
}

func TestCountedOpenBelowRepeatsNewline(t *testing.T) {
	h := newHarness(t, "a", nil)

	h.begin(insert.Request{Variant: "insert-below-with-newline", Count: 2})
	h.typeText("x")
	h.escape()

	require.Equal(t, "a\nx\nx", h.ed.Text())
	require.NoError(t, h.ed.Undo())
	require.Equal(t, "a", h.ed.Text())
}

func TestOpenAboveUndoRestoresCursor(t *testing.T) {
	h := newHarness(t, "foo\nbar", nil)
	h.ed.SetCursorPosition(0, at(1, 1))

	h.begin(insert.Request{Variant: "insert-above-with-newline"})
	require.Equal(t, at(1, 0), h.ed.SelectionHead(0))
	h.typeText("x")
	h.escape()

	require.Equal(t, "foo\nx\nbar", h.ed.Text())
	require.Equal(t, 1, h.ed.UndoCount())

	require.NoError(t, h.ed.Undo())
	require.Equal(t, "foo\nbar", h.ed.Text())
	require.Equal(t, at(1, 1), h.ed.SelectionHead(0))

	require.NoError(t, h.ed.Redo())
	require.Equal(t, "foo\nx\nbar", h.ed.Text())
	require.Equal(t, at(2, 1), h.ed.SelectionHead(0))
}

func TestReplayRepeatsDeletionRelativeToCursor(t *testing.T) {
	h := newHarness(t, "hello\nworld", nil)

	h.begin(insert.Request{Variant: "insert-after-end-of-line"})
	require.NoError(t, h.ed.Backspace())
	require.NoError(t, h.ed.Backspace())
	h.typeText("p")
	h.escape()
	require.Equal(t, "help\nworld", h.ed.Text())

	change := h.ctrl.LastChange()
	require.Equal(t, at(0, 3), change.Start)
	require.Equal(t, buffer.Extent{Columns: 2}, change.OldExtent)

	h.ed.SetCursorPosition(0, at(1, 0))
	require.NoError(t, h.ctrl.Repeat(context.Background()))

	require.Equal(t, "help\nworp", h.ed.Text())
	require.Equal(t, at(1, 3), h.ed.SelectionHead(0))
	require.True(t, h.modes.IsMode(mode.ModeNormal))
}

func TestChangeWordRepeat(t *testing.T) {
	h := newHarness(t, "foo bar", nil)

	h.begin(insert.Request{Variant: "change", Target: insert.TargetWord})
	require.Equal(t, " bar", h.ed.Text())
	h.typeText("baz")
	h.escape()
	require.Equal(t, "baz bar", h.ed.Text())
	require.Equal(t, "foo", h.register('"'))
	require.Equal(t, "foo", h.register('-'))

	h.ed.SetCursorPosition(0, at(0, 4))
	require.NoError(t, h.ctrl.Repeat(context.Background()))

	require.Equal(t, "baz baz", h.ed.Text())
	require.Equal(t, at(0, 6), h.ed.SelectionHead(0))

	require.NoError(t, h.ed.Undo())
	require.Equal(t, "baz bar", h.ed.Text())
}

func TestChangeLineKeepsEmptyRow(t *testing.T) {
	h := newHarness(t, "a\nfoo\nb", nil)
	h.ed.SetCursorPosition(0, at(1, 1))

	h.begin(insert.Request{Variant: "change-line"})
	require.Equal(t, "a\n\nb", h.ed.Text())
	require.Equal(t, at(1, 0), h.ed.SelectionHead(0))
	h.typeText("bar")
	h.escape()

	require.Equal(t, "a\nbar\nb", h.ed.Text())
	text, linewise := h.regs.Get('"')
	require.Equal(t, "foo\n", text)
	require.True(t, linewise)
	require.Equal(t, "foo\n", h.register('1'))
}

func TestChangeWithoutRegisterUpdate(t *testing.T) {
	h := newHarness(t, "foo bar", insert.StaticSettings{insert.SettingDontUpdateRegister: true})

	h.begin(insert.Request{Variant: "substitute"})
	h.escape()

	require.Equal(t, "oo bar", h.ed.Text())
	require.Equal(t, "", h.register('"'))
}

func TestEmptySession(t *testing.T) {
	h := newHarness(t, "abc", nil)

	h.begin(insert.Request{Variant: "activate-insert-mode"})
	h.escape()

	require.Equal(t, "abc", h.ed.Text())
	require.Nil(t, h.ctrl.LastChange())
	require.Equal(t, "", h.register('.'))
	require.Equal(t, 0, h.ed.UndoCount())

	require.NoError(t, h.ctrl.Repeat(context.Background()))
	require.Equal(t, "abc", h.ed.Text())
}

func TestReplayElsewhere(t *testing.T) {
	h := newHarness(t, "x\ny", nil)

	h.begin(insert.Request{Variant: "activate-insert-mode"})
	h.typeText("abc")
	h.escape()
	require.Equal(t, "abcx\ny", h.ed.Text())

	h.ed.SetCursorPosition(0, at(1, 0))
	require.NoError(t, h.ctrl.Repeat(context.Background()))

	require.Equal(t, "abcx\nabcy", h.ed.Text())
	require.Equal(t, at(1, 2), h.ed.SelectionHead(0))
}

func TestReplaceModeRepeatOverwrites(t *testing.T) {
	h := newHarness(t, "abcdef", nil)

	h.begin(insert.Request{Variant: "activate-replace-mode"})
	require.Equal(t, mode.SubmodeReplace, h.modes.Submode())
	h.typeText("XY")
	h.escape()
	require.Equal(t, "XYcdef", h.ed.Text())

	h.ed.SetCursorPosition(0, at(0, 4))
	require.NoError(t, h.ctrl.Repeat(context.Background()))

	require.Equal(t, "XYcdXY", h.ed.Text())
	require.Equal(t, at(0, 5), h.ed.SelectionHead(0))
}

func TestMultipleCursorsClearedOnExit(t *testing.T) {
	h := newHarness(t, "ab\ncd", nil)
	h.ed.SetCursorPositions([]buffer.Point{at(0, 0), at(1, 0)})

	h.begin(insert.Request{Variant: "activate-insert-mode"})
	h.typeText("x")
	h.escape()

	require.Equal(t, "xab\nxcd", h.ed.Text())
	require.Equal(t, 1, h.ed.SelectionCount())
	require.Equal(t, "x", h.ctrl.LastChange().NewText)
}

func TestMultipleCursorsKept(t *testing.T) {
	h := newHarness(t, "ab\ncd", insert.StaticSettings{insert.SettingClearMultipleCursors: false})
	h.ed.SetCursorPositions([]buffer.Point{at(0, 0), at(1, 0)})

	h.begin(insert.Request{Variant: "activate-insert-mode", Count: 2})
	h.typeText("x")
	h.escape()

	require.Equal(t, "xxab\nxxcd", h.ed.Text())
	require.Equal(t, 2, h.ed.SelectionCount())
}

func TestVisualLinewiseInsertAtStart(t *testing.T) {
	h := newHarness(t, "  foo\n  bar", nil)
	require.NoError(t, h.modes.Activate(mode.ModeVisual, mode.SubmodeLinewise))
	h.ed.SetSelectionRange(0, buffer.PointRange{Start: at(0, 0), End: at(1, 5)}, false)

	h.begin(insert.Request{Variant: "insert-at-start-of-target"})
	require.Equal(t, []buffer.Point{at(0, 2), at(1, 2)}, h.ed.CursorPositions())
	h.typeText("-")
	h.escape()

	require.Equal(t, "  -foo\n  -bar", h.ed.Text())
}

func TestUngroupedSessionKeepsEditsSeparate(t *testing.T) {
	h := newHarness(t, "", insert.StaticSettings{insert.SettingGroupChanges: false})

	h.begin(insert.Request{Variant: "activate-insert-mode"})
	h.typeText("ab")
	h.escape()

	require.Equal(t, 2, h.ed.UndoCount())
}

func TestTargetNotSelectedAborts(t *testing.T) {
	h := newHarness(t, "", nil)

	err := h.ctrl.Begin(context.Background(), insert.Request{Variant: "change", Target: insert.TargetInnerWord})
	require.ErrorIs(t, err, insert.ErrTargetNotSelected)
	require.True(t, h.modes.IsMode(mode.ModeNormal))
	require.False(t, h.ctrl.Active())
	require.Equal(t, 0, h.ed.UndoCount())

	err = h.ctrl.Begin(context.Background(), insert.Request{Variant: "change"})
	require.ErrorIs(t, err, insert.ErrTargetNotSelected)
	require.True(t, h.modes.IsMode(mode.ModeNormal))
	require.False(t, h.ctrl.Active())
	require.Equal(t, 0, h.ed.UndoCount())
}

func TestControllerErrors(t *testing.T) {
	h := newHarness(t, "abc", nil)

	err := h.ctrl.Begin(context.Background(), insert.Request{Variant: "no-such-variant"})
	require.ErrorIs(t, err, insert.ErrUnknownVariant)

	require.ErrorIs(t, h.ctrl.Repeat(context.Background()), insert.ErrNoLastOperation)

	h.begin(insert.Request{Variant: "activate-insert-mode"})
	require.True(t, h.ctrl.Active())
	err = h.ctrl.Begin(context.Background(), insert.Request{Variant: "insert-after"})
	require.ErrorIs(t, err, insert.ErrSessionActive)
	h.escape()
}

func TestInsertAtLastInsert(t *testing.T) {
	h := newHarness(t, "one\ntwo", nil)
	h.ed.SetCursorPosition(0, at(1, 3))

	h.begin(insert.Request{Variant: "activate-insert-mode"})
	h.typeText("!")
	h.escape()

	h.ed.SetCursorPosition(0, at(0, 0))
	h.begin(insert.Request{Variant: "insert-at-last-insert"})
	require.Equal(t, at(1, 4), h.ed.SelectionHead(0))
	h.escape()
}

func TestSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	h := newHarness(t, "", nil, insert.WithTracer(tp.Tracer("test")))

	h.begin(insert.Request{Variant: "activate-insert-mode", Count: 2})
	h.typeText("a")
	h.escape()
	require.NoError(t, h.ctrl.Repeat(context.Background()))

	spans := sr.Ended()
	require.Len(t, spans, 3)
	require.Equal(t, "insert.begin", spans[0].Name())
	require.Equal(t, "insert.finalize", spans[1].Name())
	require.Equal(t, "insert.repeat", spans[2].Name())

	require.Len(t, spans[1].Links(), 1)
	require.Equal(t, spans[0].SpanContext().SpanID(), spans[1].Links()[0].SpanContext.SpanID())

	var variant string
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "insert.variant" {
			variant = kv.Value.AsString()
		}
	}
	require.Equal(t, "activate-insert-mode", variant)
}

func TestChangeOccurrence(t *testing.T) {
	h := newHarness(t, "foo bar foo\nfoo", nil)

	h.begin(insert.Request{Variant: "change-occurrence", Target: insert.TargetMoveToRelativeLine})
	require.Equal(t, " bar \nfoo", h.ed.Text())
	require.Equal(t, 2, h.ed.SelectionCount())
	h.typeText("x")
	h.escape()

	require.Equal(t, "x bar x\nfoo", h.ed.Text())
	require.Equal(t, "x", h.ctrl.LastChange().NewText)
	require.Equal(t, 1, h.ed.UndoCount())
}

func TestCatalog(t *testing.T) {
	h := newHarness(t, "abc", nil)
	names := h.ctrl.Catalog().Names()
	require.Contains(t, names, "insert-at-end-of-subword-occurrence")
	require.Contains(t, names, "change-to-last-character-of-line")
	require.IsIncreasing(t, names)

	h.ctrl.Catalog().Register(insert.Variant{
		Name: "insert-at-second-column",
		Adjust: func(s *insert.Session) error {
			s.Editor().SetCursorPosition(0, at(0, 2))
			return nil
		},
	})
	h.begin(insert.Request{Variant: "insert-at-second-column"})
	h.typeText("_")
	h.escape()
	require.Equal(t, "ab_c", h.ed.Text())
}

package engine

import (
	"errors"
	"sync"
	"testing"
)

// ============================================================================
// Basic Operations
// ============================================================================

func TestNewWithContent(t *testing.T) {
	content := "Hello, World!"
	e := New(WithContent(content))

	if e.Text() != content {
		t.Errorf("expected %q, got %q", content, e.Text())
	}
	if e.Len() != ByteOffset(len(content)) {
		t.Errorf("expected len %d, got %d", len(content), e.Len())
	}
	if e.SelectionCount() != 1 || e.SelectionHead(0) != (Point{}) {
		t.Errorf("expected a single cursor at origin, got %v", e.CursorPositions())
	}
}

func TestInsertTextCollapsesAfterText(t *testing.T) {
	e := New(WithContent("foo"))
	e.SetCursorPosition(0, Point{Line: 0, Column: 3})

	if err := e.InsertText(0, "bar", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Text() != "foobar" {
		t.Errorf("expected foobar, got %q", e.Text())
	}
	if got := e.SelectionHead(0); got != (Point{Line: 0, Column: 6}) {
		t.Errorf("cursor = %v, want (0:6)", got)
	}
}

func TestInsertTextReplacesSelection(t *testing.T) {
	e := New(WithContent("one two three"))
	e.SetSelectionRange(0, PointRange{Start: Point{Line: 0, Column: 4}, End: Point{Line: 0, Column: 7}}, false)

	if e.SelectionText(0) != "two" {
		t.Fatalf("selection text = %q", e.SelectionText(0))
	}
	e.InsertText(0, "2", false)
	if e.Text() != "one 2 three" {
		t.Errorf("got %q", e.Text())
	}
}

func TestInsertTextShiftsOtherSelections(t *testing.T) {
	e := New(WithContent("ab\ncd"))
	e.SetCursorPositions([]Point{{Line: 0, Column: 1}, {Line: 1, Column: 1}})

	for i := 0; i < e.SelectionCount(); i++ {
		e.InsertText(i, "X", false)
	}

	if e.Text() != "aXb\ncXd" {
		t.Errorf("got %q", e.Text())
	}
	want := []Point{{Line: 0, Column: 2}, {Line: 1, Column: 2}}
	for i, p := range e.CursorPositions() {
		if p != want[i] {
			t.Errorf("cursor %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestInsertTextAutoIndent(t *testing.T) {
	e := New(WithContent("    foo"))
	e.SetCursorPosition(0, Point{Line: 0, Column: 7})

	e.InsertText(0, "\nbar\n\n  baz", true)

	want := "    foo\n    bar\n\n  baz"
	if e.Text() != want {
		t.Errorf("expected %q, got %q", want, e.Text())
	}
}

func TestInsertTextSelectionOutOfRange(t *testing.T) {
	e := New()
	if err := e.InsertText(3, "x", false); !errors.Is(err, ErrSelectionOutOfRange) {
		t.Errorf("expected ErrSelectionOutOfRange, got %v", err)
	}
}

func TestReadOnly(t *testing.T) {
	e := New(WithContent("x"), WithReadOnly())
	if err := e.InsertText(0, "y", false); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if !e.IsReadOnly() {
		t.Error("engine should be read-only")
	}
}

func TestBackspace(t *testing.T) {
	e := New(WithContent("ab\ncd"))
	e.SetCursorPositions([]Point{{Line: 0, Column: 2}, {Line: 1, Column: 0}})

	if err := e.Backspace(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Text() != "acd" {
		t.Errorf("got %q", e.Text())
	}
}

func TestBackspaceGrapheme(t *testing.T) {
	e := New(WithContent("aé"))
	e.SetCursorPosition(0, Point{Line: 0, Column: 4})

	e.Backspace()
	if e.Text() != "a" {
		t.Errorf("expected whole cluster removed, got %q", e.Text())
	}
}

// ============================================================================
// Undo/Redo and Checkpoints
// ============================================================================

func TestUndoRedo(t *testing.T) {
	e := New(WithContent("Hello"))
	e.SetCursorPosition(0, Point{Line: 0, Column: 5})
	e.InsertText(0, " World", false)

	if err := e.Undo(); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if e.Text() != "Hello" {
		t.Errorf("after undo got %q", e.Text())
	}
	if err := e.Redo(); err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if e.Text() != "Hello World" {
		t.Errorf("after redo got %q", e.Text())
	}
	if err := e.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestCheckpointChangesAndGrouping(t *testing.T) {
	e := New(WithContent("foo"))
	e.SetCursorPosition(0, Point{Line: 0, Column: 3})

	cp := e.CreateCheckpoint()
	for _, r := range "bar" {
		e.InsertText(0, string(r), false)
	}

	changes, err := e.ChangesSinceCheckpoint(cp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(changes) != 1 || changes[0].NewText != "bar" {
		t.Fatalf("unexpected changes %v", changes)
	}

	if err := e.GroupChangesSinceCheckpoint(cp); err != nil {
		t.Fatalf("group failed: %v", err)
	}
	e.RemoveCheckpoint(cp)
	if e.UndoCount() != 1 {
		t.Errorf("expected a single undo step, got %d", e.UndoCount())
	}

	e.Undo()
	if e.Text() != "foo" {
		t.Errorf("after undo got %q", e.Text())
	}
	if got := e.SelectionHead(0); got != (Point{Line: 0, Column: 3}) {
		t.Errorf("cursor after undo = %v, want (0:3)", got)
	}

	if err := e.GroupChangesSinceCheckpoint(cp); err == nil {
		t.Error("grouping a removed checkpoint should fail")
	}
}

func TestMarkerFollowsNewlineAbove(t *testing.T) {
	e := New(WithContent("a\nb"))
	e.SetCursorPosition(0, Point{Line: 1, Column: 0})
	m := e.MarkPosition(Point{Line: 1, Column: 0})
	defer m.Destroy()

	e.InsertNewlineAbove()

	if got := m.Head(); got != (Point{Line: 2, Column: 0}) {
		t.Errorf("marker = %v, want (2:0)", got)
	}
	if got := e.SelectionHead(0); got != (Point{Line: 1, Column: 0}) {
		t.Errorf("cursor = %v, want (1:0)", got)
	}
}

// ============================================================================
// Rows, Indentation and Folds
// ============================================================================

func TestInsertNewlineAboveFirstRow(t *testing.T) {
	e := New(WithContent("foo"))
	e.SetCursorPosition(0, Point{Line: 0, Column: 2})

	e.InsertNewlineAbove()
	if e.Text() != "\nfoo" {
		t.Errorf("got %q", e.Text())
	}
	if got := e.SelectionHead(0); got != (Point{}) {
		t.Errorf("cursor = %v, want origin", got)
	}
}

func TestInsertNewlineBelowAndAutoIndent(t *testing.T) {
	e := New(WithContent("  foo\nbar"), WithAutoIndent(true))

	if !e.AutoIndentEnabled() {
		t.Fatal("auto-indent should be enabled")
	}
	e.InsertNewlineBelow()
	e.AutoIndentRow(1)

	if e.Text() != "  foo\n  \nbar" {
		t.Errorf("got %q", e.Text())
	}
	if got := e.SelectionHead(0); got != (Point{Line: 1, Column: 2}) {
		t.Errorf("cursor = %v, want (1:2)", got)
	}
}

func TestSplitSelectionsIntoLines(t *testing.T) {
	e := New(WithContent("abc\ndef\nghi"))
	e.SetSelectionRange(0, PointRange{Start: Point{Line: 0, Column: 1}, End: Point{Line: 2, Column: 2}}, false)

	e.SplitSelectionsIntoLines()

	want := []PointRange{
		{Start: Point{Line: 0, Column: 1}, End: Point{Line: 0, Column: 3}},
		{Start: Point{Line: 1, Column: 0}, End: Point{Line: 1, Column: 3}},
		{Start: Point{Line: 2, Column: 0}, End: Point{Line: 2, Column: 2}},
	}
	if e.SelectionCount() != len(want) {
		t.Fatalf("expected %d selections, got %d", len(want), e.SelectionCount())
	}
	for i, w := range want {
		if got := e.SelectionRange(i); got != w {
			t.Errorf("selection %d = %v, want %v", i, got, w)
		}
	}
}

func TestClearSelectionsKeepsPrimary(t *testing.T) {
	e := New(WithContent("abc\ndef"))
	e.SetSelectionRanges([]PointRange{
		{Start: Point{Line: 0, Column: 0}, End: Point{Line: 0, Column: 2}},
		{Start: Point{Line: 1, Column: 0}, End: Point{Line: 1, Column: 2}},
	})

	e.ClearSelections()
	if e.SelectionCount() != 1 {
		t.Fatalf("expected 1 selection, got %d", e.SelectionCount())
	}
	if r := e.SelectionRange(0); !r.IsEmpty() || r.Start != (Point{Line: 0, Column: 2}) {
		t.Errorf("primary should collapse to its head, got %v", r)
	}
}

func TestTrimmedLineRange(t *testing.T) {
	e := New(WithContent("  foo bar  \n   "))
	if got := e.TrimmedLineRange(0); got != (PointRange{Start: Point{Line: 0, Column: 2}, End: Point{Line: 0, Column: 9}}) {
		t.Errorf("row 0 = %v", got)
	}
	if got := e.TrimmedLineRange(1); !got.IsEmpty() {
		t.Errorf("blank row should be empty, got %v", got)
	}
}

func TestFolds(t *testing.T) {
	e := New(WithContent("func a\n  x\n  y\nfunc b\n  z\nend"))

	if e.Fold(5) {
		t.Error("last row starts no fold")
	}
	if got := e.FoldEndRow(1); got != 1 {
		t.Errorf("unfolded row should map to itself, got %d", got)
	}
	if !e.Fold(1) {
		t.Fatal("row 1 is inside a fold")
	}
	if got := e.FoldEndRow(0); got != 2 {
		t.Errorf("FoldEndRow(0) = %d, want 2", got)
	}
	e.UnfoldAll()
	if got := e.FoldEndRow(0); got != 0 {
		t.Errorf("after unfold FoldEndRow(0) = %d, want 0", got)
	}
}

func TestConcurrentReads(t *testing.T) {
	e := New(WithContent("Hello\nWorld"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = e.Text()
			_ = e.LineText(1)
			_ = e.SelectionRange(0)
		}()
	}
	wg.Wait()
}

package history

import "testing"

func TestInitialState(t *testing.T) {
	e := New("empty", Config{})
	if got := e.Current(); got != "empty" {
		t.Fatalf("Current() = %q", got)
	}
	if n, c := e.Stats(); n != 1 || c != 0 {
		t.Fatalf("Stats() = %d, %d; want 1, 0", n, c)
	}
	if _, ok := e.Undo(); ok {
		t.Fatalf("undo at start should report no entry")
	}
	if _, ok := e.Redo(); ok {
		t.Fatalf("redo at end should report no entry")
	}
}

func TestUndoRestoresPreviousSnapshot(t *testing.T) {
	e := New("s0", Config{})
	e.Push("s1")
	e.Push("s2")
	s, ok := e.Undo()
	if !ok || s != "s1" {
		t.Fatalf("undo expected s1, got ok=%v s=%q", ok, s)
	}
	s, ok = e.Undo()
	if !ok || s != "s0" {
		t.Fatalf("undo expected s0, got ok=%v s=%q", ok, s)
	}
	if e.CanUndo() {
		t.Fatalf("cursor is at the start")
	}
}

func TestRedoAfterUndo(t *testing.T) {
	e := New("s0", Config{})
	e.Push("s1")
	e.Push("s2")
	e.Undo()
	e.Undo()
	for _, want := range []string{"s1", "s2"} {
		s, ok := e.Redo()
		if !ok || s != want {
			t.Fatalf("redo expected %q, got ok=%v s=%q", want, ok, s)
		}
	}
	if _, ok := e.Redo(); ok {
		t.Fatalf("redo past end should report no entry")
	}
}

func TestPushAfterUndoDiscardsRedoBranch(t *testing.T) {
	e := New("s0", Config{})
	e.Push("s1")
	e.Push("s2")
	e.Undo()
	e.Push("t")
	if _, ok := e.Redo(); ok {
		t.Fatalf("redo branch should have been discarded")
	}
	if n, c := e.Stats(); n != 3 || c != 2 {
		t.Fatalf("Stats() = %d, %d; want 3, 2", n, c)
	}
	if s, _ := e.Undo(); s != "s1" {
		t.Fatalf("undo after branch expected s1, got %q", s)
	}
}

func TestPushDoesNotAliasDiscardedTail(t *testing.T) {
	e := New(0, Config{})
	for i := 1; i <= 4; i++ {
		e.Push(i)
	}
	e.Undo()
	e.Undo()
	e.Push(99)
	// entries 3 and 4 are gone; walking back must see 2, 1, 0
	for _, want := range []int{2, 1, 0} {
		got, ok := e.Undo()
		if !ok || got != want {
			t.Fatalf("undo expected %d, got ok=%v v=%d", want, ok, got)
		}
	}
}

func TestMaxEntriesDropsOldest(t *testing.T) {
	e := New(0, Config{MaxEntries: 3})
	for i := 1; i <= 5; i++ {
		e.Push(i)
	}
	n, c := e.Stats()
	if n != 3 || c != 2 {
		t.Fatalf("Stats() = %d, %d; want 3, 2", n, c)
	}
	e.Undo()
	if v, ok := e.Undo(); !ok || v != 3 {
		t.Fatalf("expected oldest kept entry 3, got ok=%v v=%d", ok, v)
	}
	if _, ok := e.Undo(); ok {
		t.Fatalf("entries older than the cap should be gone")
	}
}

func TestReset(t *testing.T) {
	e := New("a", Config{})
	e.Push("b")
	e.Reset("z")
	if e.CanUndo() || e.CanRedo() || e.Current() != "z" {
		t.Fatalf("reset did not restore a single-entry log")
	}
}

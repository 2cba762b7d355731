package highlight

import (
	"sync/atomic"
	"testing"
	"time"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// TestMark tests mark expiry.
func TestMark(t *testing.T) {
	t.Parallel()

	t.Run("mark expires and reports change", func(t *testing.T) {
		t.Parallel()

		var changes atomic.Int32
		s := New(20*time.Millisecond, func() { changes.Add(1) })
		s.Mark(25)
		if !s.Active(25) {
			t.Fatal("expected 25 to be marked")
		}
		waitFor(t, func() bool { return !s.Active(25) })
		waitFor(t, func() bool { return changes.Load() == 1 })
	})

	t.Run("re-marking restarts rather than stacks", func(t *testing.T) {
		t.Parallel()

		var changes atomic.Int32
		s := New(80*time.Millisecond, func() { changes.Add(1) })
		s.Mark(7)
		time.Sleep(50 * time.Millisecond)
		s.Mark(7)
		time.Sleep(50 * time.Millisecond)

		// 100ms after the first mark, the restarted timer still holds.
		if !s.Active(7) {
			t.Error("re-marked id expired on the first timer")
		}
		waitFor(t, func() bool { return !s.Active(7) })
		time.Sleep(20 * time.Millisecond)
		if n := changes.Load(); n != 1 {
			t.Errorf("expected one expiry, got %d", n)
		}
	})

	t.Run("independent ids expire independently", func(t *testing.T) {
		t.Parallel()

		s := New(time.Hour, nil)
		s.Mark(3)
		s.Mark(1)
		ids := s.IDs()
		if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
			t.Errorf("unexpected ids %v", ids)
		}
		s.Clear()
	})

	t.Run("non positive duration uses default", func(t *testing.T) {
		t.Parallel()

		s := New(0, nil)
		if s.duration != DefaultDuration {
			t.Errorf("expected default duration, got %v", s.duration)
		}
	})
}

// TestClear tests cancellation of pending marks.
func TestClear(t *testing.T) {
	t.Parallel()

	var changes atomic.Int32
	s := New(20*time.Millisecond, func() { changes.Add(1) })
	s.Mark(1)
	s.Mark(2)
	s.Clear()
	if s.Active(1) || s.Active(2) {
		t.Error("expected marks to be cleared")
	}
	time.Sleep(60 * time.Millisecond)
	if changes.Load() != 0 {
		t.Error("cleared timers must not fire")
	}
}

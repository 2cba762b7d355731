package sound

import (
	"bytes"
	"sync"
	"testing"
)

// blockingWriter blocks every Write until released.
type blockingWriter struct {
	release chan struct{}
	mu      sync.Mutex
	buf     bytes.Buffer
}

func (w *blockingWriter) Write(p []byte) (int, error) {
	<-w.release
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

// lockedBuffer is a bytes.Buffer safe for concurrent use.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// TestCueString tests cue names.
func TestCueString(t *testing.T) {
	t.Parallel()

	want := map[Cue]string{CueClick: "click", CueSuccess: "success", CueError: "error", CuePop: "pop", Cue(42): "unknown"}
	for cue, name := range want {
		if cue.String() != name {
			t.Errorf("Cue(%d).String() = %q, want %q", int(cue), cue.String(), name)
		}
	}
}

// TestBell tests the BEL player.
func TestBell(t *testing.T) {
	t.Parallel()

	t.Run("writes bells per cue", func(t *testing.T) {
		t.Parallel()

		var out lockedBuffer
		b := NewBell(&out, 0)
		b.Play(CueSuccess)
		b.Play(CueClick)
		b.Play(CueError)
		b.Close()

		if got := out.String(); got != "\a\a\a" {
			t.Errorf("expected three BELs, got %q", got)
		}
	})

	t.Run("play never blocks on a stuck writer", func(t *testing.T) {
		t.Parallel()

		w := &blockingWriter{release: make(chan struct{})}
		b := NewBell(w, 2)
		for range 100 {
			b.Play(CueError)
		}
		close(w.release)
		b.Close()
	})

	t.Run("play after close is ignored", func(t *testing.T) {
		t.Parallel()

		var out lockedBuffer
		b := NewBell(&out, 1)
		b.Close()
		b.Close()
		b.Play(CueSuccess)
		if out.String() != "" {
			t.Errorf("expected no output, got %q", out.String())
		}
	})
}

// TestNop tests the silent player.
func TestNop(t *testing.T) {
	t.Parallel()

	var p Player = Nop{}
	p.Play(CueError)
}

// Package sound provides fire-and-forget audible feedback.
//
// Play never blocks and never reports an error: a cue that cannot be
// delivered immediately is dropped.
package sound

import (
	"io"
	"sync"
)

// Cue is a kind of feedback sound.
type Cue int

const (
	// CueClick acknowledges a navigation action.
	CueClick Cue = iota
	// CueSuccess confirms a capture.
	CueSuccess
	// CueError reports a failure.
	CueError
	// CuePop accompanies opening a detail view.
	CuePop
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueClick:
		return "click"
	case CueSuccess:
		return "success"
	case CueError:
		return "error"
	case CuePop:
		return "pop"
	default:
		return "unknown"
	}
}

// Player plays cues.
type Player interface {
	Play(cue Cue)
}

// Nop is a silent Player.
type Nop struct{}

// Play implements Player.
func (Nop) Play(Cue) {}

// bells is the number of BEL characters written per cue.
var bells = map[Cue]int{
	CueClick:   0,
	CueSuccess: 1,
	CueError:   2,
	CuePop:     0,
}

// Bell plays cues as terminal BEL characters written by one background
// goroutine.
type Bell struct {
	w     io.Writer
	queue chan Cue
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

// DefaultQueueSize is the number of cues Bell buffers before dropping.
const DefaultQueueSize = 8

// NewBell starts a Bell writing to w. Close stops it.
func NewBell(w io.Writer, queueSize int) *Bell {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	b := &Bell{
		w:     w,
		queue: make(chan Cue, queueSize),
		done:  make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *Bell) run() {
	defer close(b.done)
	for cue := range b.queue {
		n := bells[cue]
		if n == 0 {
			continue
		}
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = '\a'
		}
		_, _ = b.w.Write(buf) //nolint:errcheck // feedback is best effort
	}
}

// Play queues cue, dropping it when the queue is full.
// Play after Close is a no-op.
func (b *Bell) Play(cue Cue) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	select {
	case b.queue <- cue:
	default:
	}
}

// Close drains queued cues and stops the writer goroutine.
func (b *Bell) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.queue)
	b.mu.Unlock()
	<-b.done
}

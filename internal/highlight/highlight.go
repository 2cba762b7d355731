// Package highlight schedules transient, self-expiring marks keyed by
// species ID.
package highlight

import (
	"slices"
	"sync"
	"time"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// DefaultDuration is how long a mark stays on.
const DefaultDuration = 1500 * time.Millisecond

// Scheduler holds at most one timer per ID. Marking an ID that is already
// marked restarts its timer.
type Scheduler struct {
	duration time.Duration
	onChange func()

	mu     sync.Mutex
	timers map[model.ID]*entry
	seq    uint64
}

type entry struct {
	timer *time.Timer
	seq   uint64
}

// New returns a Scheduler whose marks last d. onChange, if non-nil, is
// called after a mark expires. It runs on the timer goroutine without any
// lock held.
func New(d time.Duration, onChange func()) *Scheduler {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Scheduler{
		duration: d,
		onChange: onChange,
		timers:   make(map[model.ID]*entry),
	}
}

// Mark turns on the mark for id, replacing any pending timer.
func (s *Scheduler) Mark(id model.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.timers[id]; ok {
		e.timer.Stop()
	}
	s.seq++
	seq := s.seq
	e := &entry{seq: seq}
	e.timer = time.AfterFunc(s.duration, func() { s.expire(id, seq) })
	s.timers[id] = e
}

// expire clears id unless it was re-marked after this timer was armed.
func (s *Scheduler) expire(id model.ID, seq uint64) {
	s.mu.Lock()
	e, ok := s.timers[id]
	if !ok || e.seq != seq {
		s.mu.Unlock()
		return
	}
	delete(s.timers, id)
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange()
	}
}

// Active reports whether id is marked.
func (s *Scheduler) Active(id model.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[id]
	return ok
}

// IDs returns the marked IDs in ascending order.
func (s *Scheduler) IDs() []model.ID {
	s.mu.Lock()
	ids := make([]model.ID, 0, len(s.timers))
	for id := range s.timers {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	slices.Sort(ids)
	return ids
}

// Clear cancels every pending mark.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.timers {
		e.timer.Stop()
		delete(s.timers, id)
	}
}

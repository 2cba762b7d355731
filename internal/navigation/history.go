package navigation

import "sync"

// History stores the current location.
//
// Push and Replace are programmatic changes and are not reported to
// subscribers. Subscribers only see external changes such as back and
// forward.
type History interface {
	Current() Location
	Push(loc Location)
	Subscribe(fn func(Location)) (cancel func())
}

// MemoryHistory is an in-memory History with a back/forward stack.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []Location
	index   int
	subs    map[int]func(Location)
	nextSub int
}

// NewMemoryHistory returns a history positioned at initial.
func NewMemoryHistory(initial Location) *MemoryHistory {
	return &MemoryHistory{
		entries: []Location{initial},
		subs:    make(map[int]func(Location)),
	}
}

// Current returns the current location.
func (h *MemoryHistory) Current() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Push adds loc after the current entry and drops any forward entries.
func (h *MemoryHistory) Push(loc Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], loc)
	h.index = len(h.entries) - 1
}

// Replace overwrites the current entry.
func (h *MemoryHistory) Replace(loc Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index] = loc
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Back moves one entry back and notifies subscribers. It reports false at
// the first entry.
func (h *MemoryHistory) Back() bool {
	return h.move(-1)
}

// Forward moves one entry forward and notifies subscribers. It reports
// false at the last entry.
func (h *MemoryHistory) Forward() bool {
	return h.move(1)
}

func (h *MemoryHistory) move(delta int) bool {
	h.mu.Lock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = next
	loc := h.entries[next]
	subs := make([]func(Location), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	for _, fn := range subs {
		fn(loc)
	}
	return true
}

// Subscribe registers fn for external changes.
func (h *MemoryHistory) Subscribe(fn func(Location)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// RecordKey is the backend key that holds the serialized capture set.
const RecordKey = "pokedex.captured"

// Backend persists named records. database.DB satisfies it.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store is a write-through captured set.
type Store struct {
	backend Backend
	logger  *slog.Logger

	mu       sync.RWMutex
	captured map[model.ID]bool
	degraded bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open loads the captured set from backend.
//
// A missing, unreadable or malformed record yields an empty set. Keys
// outside the valid ID range are dropped. Neither case is an error.
func Open(ctx context.Context, backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		captured: make(map[model.ID]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	if s.backend == nil {
		s.degraded = true
		return
	}
	raw, err := s.backend.Get(ctx, RecordKey)
	if err != nil {
		s.logger.Warn("capture set unreadable, starting empty", "error", err)
		return
	}
	if len(raw) == 0 {
		return
	}

	var stored map[string]bool
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Warn("capture set malformed, starting empty", "error", err)
		return
	}
	dropped := 0
	for k, v := range stored {
		n, err := strconv.Atoi(k)
		if err != nil || !model.ID(n).Valid() {
			dropped++
			continue
		}
		if v {
			s.captured[model.ID(n)] = true
		}
	}
	if dropped > 0 {
		s.logger.Warn("dropped invalid keys from capture set", "count", dropped)
	}
}

// IsCaptured reports whether id is in the set.
func (s *Store) IsCaptured(id model.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.captured[id]
}

// Record adds id to the set and persists it. It reports whether id was
// newly added. Recording an owned id changes nothing.
//
// A persistence failure is logged and switches the store to memory-only;
// the in-memory mutation is kept and no error is returned.
func (s *Store) Record(ctx context.Context, id model.ID) (bool, error) {
	if !id.Valid() {
		return false, fmt.Errorf("%w: %d", model.ErrInvalidIdentifier, int(id))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.captured[id] {
		return false, nil
	}
	s.captured[id] = true
	s.persistLocked(ctx)
	return true, nil
}

// ResetAll clears the set and persists the empty set.
func (s *Store) ResetAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captured = make(map[model.ID]bool)
	s.persistLocked(ctx)
}

// persistLocked writes the full set. Callers hold s.mu.
func (s *Store) persistLocked(ctx context.Context) {
	if s.degraded {
		return
	}
	out := make(map[string]bool, len(s.captured))
	for id := range s.captured {
		out[id.Key()] = true
	}
	data, err := json.Marshal(out)
	if err == nil {
		err = s.backend.Put(ctx, RecordKey, data)
	}
	if err != nil {
		s.degraded = true
		s.logger.Warn("capture set not saved, continuing in memory only",
			"error", fmt.Errorf("%w: %w", model.ErrPersistence, err))
	}
}

// Snapshot returns a copy of the set.
func (s *Store) Snapshot() map[model.ID]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[model.ID]bool, len(s.captured))
	for id := range s.captured {
		out[id] = true
	}
	return out
}

// IDs returns the captured IDs in ascending order.
func (s *Store) IDs() []model.ID {
	s.mu.RLock()
	ids := make([]model.ID, 0, len(s.captured))
	for id := range s.captured {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Count returns the number of captured IDs.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.captured)
}

// Degraded reports whether the store has stopped persisting.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

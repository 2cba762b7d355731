package capture

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/K4zzu/Nfc-PokeDex/internal/database"
	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// TestOpen tests loading of the persisted set.
func TestOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name  string
		raw   string
		want  []model.ID
		setup func(*MemoryBackend)
	}{
		{name: "missing record is empty"},
		{name: "valid record is loaded", raw: `{"25":true,"1":true}`, want: []model.ID{1, 25}},
		{name: "malformed record is empty", raw: `{"25":tru`},
		{name: "non object record is empty", raw: `[25]`},
		{name: "out of range keys are dropped", raw: `{"0":true,"25":true,"899":true,"abc":true}`, want: []model.ID{25}},
		{name: "false entries are ignored", raw: `{"7":false,"8":true}`, want: []model.ID{8}},
		{
			name:  "unreadable backend is empty",
			setup: func(m *MemoryBackend) { m.SetErr(errors.New("disk gone")) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			backend := NewMemoryBackend()
			if tt.raw != "" {
				_ = backend.Put(ctx, RecordKey, []byte(tt.raw))
			}
			if tt.setup != nil {
				tt.setup(backend)
			}

			s := Open(ctx, backend)
			got := s.IDs()
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

// TestRecord tests capture recording.
func TestRecord(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("adds and persists", func(t *testing.T) {
		t.Parallel()

		backend := NewMemoryBackend()
		s := Open(ctx, backend)

		added, err := s.Record(ctx, 25)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !added || !s.IsCaptured(25) {
			t.Error("expected 25 to be captured")
		}

		raw, _ := backend.Get(ctx, RecordKey)
		var stored map[string]bool
		if err := json.Unmarshal(raw, &stored); err != nil {
			t.Fatalf("persisted record is not JSON: %v", err)
		}
		if !stored["25"] || len(stored) != 1 {
			t.Errorf("unexpected persisted record %s", raw)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		s := Open(ctx, NewMemoryBackend())
		if _, err := s.Record(ctx, 25); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		before := s.Snapshot()

		added, err := s.Record(ctx, 25)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if added {
			t.Error("second record should not report an addition")
		}
		after := s.Snapshot()
		if len(before) != len(after) || !after[25] {
			t.Errorf("set changed: %v -> %v", before, after)
		}
	})

	t.Run("rejects out of range ids", func(t *testing.T) {
		t.Parallel()

		s := Open(ctx, NewMemoryBackend())
		for _, id := range []model.ID{0, -1, model.MaxID + 1} {
			if _, err := s.Record(ctx, id); !errors.Is(err, model.ErrInvalidIdentifier) {
				t.Errorf("Record(%d): expected ErrInvalidIdentifier, got %v", id, err)
			}
		}
		if s.Count() != 0 {
			t.Errorf("expected empty set, got %d", s.Count())
		}
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		t.Parallel()

		s := Open(ctx, NewMemoryBackend())
		_, _ = s.Record(ctx, 4)
		snap := s.Snapshot()
		snap[5] = true
		if s.IsCaptured(5) {
			t.Error("mutating a snapshot must not affect the store")
		}
	})
}

// TestPersistenceFailure tests memory-only degradation.
func TestPersistenceFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := NewMemoryBackend()
	s := Open(ctx, backend)

	backend.SetErr(errors.New("quota exceeded"))
	added, err := s.Record(ctx, 7)
	if err != nil {
		t.Fatalf("persistence failure must not surface: %v", err)
	}
	if !added || !s.IsCaptured(7) {
		t.Error("in-memory mutation should be kept")
	}
	if !s.Degraded() {
		t.Error("expected store to be degraded")
	}

	// Once degraded, later writes stay in memory even if the backend recovers.
	backend.SetErr(nil)
	_, _ = s.Record(ctx, 8)
	if raw, _ := backend.Get(ctx, RecordKey); raw != nil {
		t.Errorf("degraded store should not write, found %s", raw)
	}
	if s.Count() != 2 {
		t.Errorf("expected 2 captured, got %d", s.Count())
	}
}

// TestResetAll tests clearing the set.
func TestResetAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := NewMemoryBackend()
	s := Open(ctx, backend)
	for _, id := range []model.ID{1, 25, 898} {
		_, _ = s.Record(ctx, id)
	}

	s.ResetAll(ctx)

	for i := 1; i <= model.MaxID; i++ {
		if s.IsCaptured(model.ID(i)) {
			t.Fatalf("expected %d to be cleared", i)
		}
	}
	reopened := Open(ctx, backend)
	if reopened.Count() != 0 {
		t.Errorf("reset was not persisted, %d remain", reopened.Count())
	}
}

// TestSQLiteBackend tests the store against the SQLite record store.
func TestSQLiteBackend(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	s := Open(ctx, db)
	for _, id := range []model.ID{133, 25} {
		if _, err := s.Record(ctx, id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	_ = db.Close()

	db2, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	t.Cleanup(func() { _ = db2.Close() })

	got := Open(ctx, db2).IDs()
	if len(got) != 2 || got[0] != 25 || got[1] != 133 {
		t.Errorf("expected [25 133] after reload, got %v", got)
	}
}

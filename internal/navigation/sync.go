package navigation

import "github.com/K4zzu/Nfc-PokeDex/internal/model"

// Listener receives external navigation changes.
type Listener interface {
	// Revisit is called when the new location encodes id.
	Revisit(id model.ID)
	// Dismiss is called when the new location encodes nothing.
	Dismiss()
}

// Sync binds a History to species IDs.
type Sync struct {
	history History
}

// NewSync returns a Sync over history.
func NewSync(history History) *Sync {
	return &Sync{history: history}
}

// Current returns the current location.
func (s *Sync) Current() Location {
	return s.history.Current()
}

// ReadCurrentID returns the species encoded in the current location.
func (s *Sync) ReadCurrentID() (model.ID, bool) {
	return s.history.Current().ID()
}

// Navigate pushes loc unless it is already the current location.
func (s *Sync) Navigate(loc Location) {
	if s.history.Current().String() == loc.String() {
		return
	}
	s.history.Push(loc)
}

// PushID pushes the canonical location of id unless the current location
// already encodes it. It reports whether an entry was pushed.
func (s *Sync) PushID(id model.ID) bool {
	if cur, ok := s.ReadCurrentID(); ok && cur == id {
		return false
	}
	s.history.Push(CanonicalLocation(id))
	return true
}

// OnExternalChange forwards external changes to l.
func (s *Sync) OnExternalChange(l Listener) (cancel func()) {
	return s.history.Subscribe(func(loc Location) {
		if id, ok := loc.ID(); ok {
			l.Revisit(id)
			return
		}
		l.Dismiss()
	})
}

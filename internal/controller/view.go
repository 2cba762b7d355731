package controller

import (
	"slices"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// Card is one grid entry.
type Card struct {
	ID          model.ID       `json:"id"`
	Captured    bool           `json:"captured"`
	Loading     bool           `json:"loading"`
	Highlighted bool           `json:"highlighted"`
	Record      *model.Species `json:"record,omitempty"`
}

// Detail is the open detail view. A nil Record means no data could be
// fetched.
type Detail struct {
	ID       model.ID       `json:"id"`
	Captured bool           `json:"captured"`
	Record   *model.Species `json:"record,omitempty"`
}

// View is an immutable snapshot of everything a Renderer draws.
type View struct {
	Page          int              `json:"page"`
	TotalPages    int              `json:"totalPages"`
	First         model.ID         `json:"first"`
	Last          model.ID         `json:"last"`
	Cards         []Card           `json:"cards"`
	Detail        *Detail          `json:"detail,omitempty"`
	LastID        model.ID         `json:"lastId,omitempty"`
	TotalCaptured int              `json:"totalCaptured"`
	Log           []model.LogEntry `json:"log"`
	Scanning      bool             `json:"scanning"`
	Location      string           `json:"location"`
	Degraded      bool             `json:"degraded,omitempty"`
}

// View returns the current snapshot. Records of uncaptured cards are
// withheld.
func (c *Controller) View() View {
	c.mu.Lock()
	page := c.page
	lastID := c.lastID
	scanning := c.scanning
	logCopy := slices.Clone(c.log)
	var det *detailState
	if c.detail != nil {
		d := *c.detail
		det = &d
	}
	c.mu.Unlock()

	first, last := model.PageBounds(page)
	v := View{
		Page:          page,
		TotalPages:    model.TotalPages(),
		First:         first,
		Last:          last,
		LastID:        lastID,
		TotalCaptured: c.store.Count(),
		Log:           logCopy,
		Scanning:      scanning,
		Location:      c.nav.Current().String(),
		Degraded:      c.store.Degraded(),
	}
	for _, id := range model.PageIDs(page) {
		card := Card{
			ID:          id,
			Captured:    c.store.IsCaptured(id),
			Loading:     c.cache.Loading(id),
			Highlighted: c.highlights.Active(id),
		}
		if card.Captured {
			card.Record, _ = c.cache.Peek(id)
		}
		v.Cards = append(v.Cards, card)
	}
	if det != nil {
		v.Detail = &Detail{
			ID:       det.id,
			Captured: c.store.IsCaptured(det.id),
			Record:   det.record,
		}
	}
	return v
}

// DetailID returns the id of the open detail view.
func (c *Controller) DetailID() (model.ID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return 0, false
	}
	return c.detail.id, true
}

// LastID returns the last captured id.
func (c *Controller) LastID() (model.ID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastID, c.lastID.Valid()
}

// PendingFocus returns the one-shot focus request, if any.
func (c *Controller) PendingFocus() (model.ID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingFocus, c.pendingFocus.Valid()
}

// Log returns a copy of the session log.
func (c *Controller) Log() []model.LogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.log)
}

package controller

import (
	"context"
	"fmt"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
	"github.com/K4zzu/Nfc-PokeDex/internal/navigation"
	"github.com/K4zzu/Nfc-PokeDex/internal/resolver"
	"github.com/K4zzu/Nfc-PokeDex/internal/sound"
)

// HandleIdentified runs the full flow for an identified species: capture
// (unless revisiting), location update, detail view and highlight.
//
// Re-identifying an owned species repeats the notification path even though
// the captured set does not change.
func (c *Controller) HandleIdentified(ctx context.Context, id model.ID, origin model.Origin) error {
	if !id.Valid() {
		c.addLog(fmt.Sprintf("Invalid species id %d", int(id)))
		c.play(sound.CueError)
		c.render()
		return fmt.Errorf("%w: %d", model.ErrInvalidIdentifier, int(id))
	}

	if origin.Captures() {
		if err := c.RecordCapture(ctx, id, origin); err != nil {
			return err
		}
		c.nav.PushID(id)
	}

	if c.openDetail(ctx, id) {
		c.highlights.Mark(id)
	}
	c.render()
	return nil
}

// RecordCapture marks id as captured without opening anything. The id
// becomes the last captured id and the pending focus target.
func (c *Controller) RecordCapture(ctx context.Context, id model.ID, origin model.Origin) error {
	added, err := c.store.Record(ctx, id)
	if err != nil {
		c.addLog(fmt.Sprintf("Invalid species id %d", int(id)))
		c.play(sound.CueError)
		c.render()
		return err
	}

	c.mu.Lock()
	c.lastID = id
	c.pendingFocus = id
	c.mu.Unlock()

	c.logger.Debug("capture recorded", "id", int(id), "origin", origin.String(), "new", added)
	c.addLog(fmt.Sprintf("Captured species %s", id))
	c.metrics.Captured(origin)
	c.play(sound.CueSuccess)
	c.render()
	return nil
}

// OpenDetail fetches id and opens its detail view without capturing. A
// failed fetch opens a detail without data. The location is moved to the
// canonical path of id if it does not already encode it.
//
// A detail request is dropped when a newer identification, a close or a
// reset happens while its fetch is in flight, so the detail view and the
// location never disagree.
func (c *Controller) OpenDetail(ctx context.Context, id model.ID) {
	c.openDetail(ctx, id)
}

// openDetail reports whether the detail for id was opened.
func (c *Controller) openDetail(ctx context.Context, id model.ID) bool {
	if !id.Valid() {
		return false
	}
	// The sequence bump and the push happen under one lock, so the newest
	// request is also the last one to move the location.
	c.mu.Lock()
	c.detailSeq++
	seq := c.detailSeq
	c.nav.PushID(id)
	c.mu.Unlock()
	c.render()

	record, _ := c.cache.Get(ctx, id)

	c.mu.Lock()
	if c.detailSeq != seq {
		c.mu.Unlock()
		c.logger.Debug("detail request superseded", "id", int(id))
		return false
	}
	c.detail = &detailState{id: id, record: record}
	c.mu.Unlock()

	c.metrics.DetailOpened()
	c.render()
	return true
}

// CloseDetail closes the detail view and consumes the pending focus
// request, moving the grid to the focused species.
func (c *Controller) CloseDetail() {
	c.mu.Lock()
	c.detail = nil
	c.detailSeq++
	pending := c.pendingFocus
	c.pendingFocus = 0
	c.leaveSpeciesLocation()
	c.mu.Unlock()

	if pending.Valid() {
		c.focus(pending)
	}
	c.play(sound.CuePop)
	c.render()
}

// leaveSpeciesLocation pushes the root location when the current location
// still encodes a species, so that location and detail view agree. Callers
// hold c.mu.
func (c *Controller) leaveSpeciesLocation() {
	if _, ok := c.nav.ReadCurrentID(); ok {
		c.nav.Navigate(navigation.Root)
	}
}

// FocusOn moves the grid to the page of id and highlights its card.
func (c *Controller) FocusOn(id model.ID) {
	if !id.Valid() {
		return
	}
	c.focus(id)
	c.render()
}

func (c *Controller) focus(id model.ID) {
	c.mu.Lock()
	c.page = id.Page()
	c.mu.Unlock()
	c.highlights.Mark(id)
}

// ShowCard opens the detail of a grid card. Cards that are not captured
// are refused.
func (c *Controller) ShowCard(ctx context.Context, id model.ID) error {
	if !id.Valid() || !c.store.IsCaptured(id) {
		c.play(sound.CueError)
		return fmt.Errorf("%w: %s", ErrNotCaptured, id)
	}
	c.play(sound.CuePop)
	c.OpenDetail(ctx, id)
	return nil
}

// Search resolves query by number or name and focuses the matching card.
// Captured species also get their detail opened. Search never captures.
func (c *Controller) Search(ctx context.Context, query string) (model.ID, bool) {
	id, ok := resolver.FromQuery(ctx, query, c.cache.LookupName)
	if !ok {
		c.addLog(fmt.Sprintf("No species found for %q", query))
		c.play(sound.CueError)
		c.render()
		return 0, false
	}

	c.play(sound.CueClick)
	c.FocusOn(id)
	if c.store.IsCaptured(id) {
		c.OpenDetail(ctx, id)
	}
	return id, true
}

// PrefetchPage warms the cache for the captured cards of the current page.
func (c *Controller) PrefetchPage(ctx context.Context, limit int) error {
	c.mu.Lock()
	page := c.page
	c.mu.Unlock()

	var ids []model.ID
	for _, id := range model.PageIDs(page) {
		if c.store.IsCaptured(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	err := c.cache.Prefetch(ctx, ids, limit)
	c.render()
	return err
}

// Reset clears the captured set and all derived session state.
// Confirmation is the caller's responsibility.
func (c *Controller) Reset(ctx context.Context) {
	c.store.ResetAll(ctx)
	c.cache.Reset()
	c.highlights.Clear()

	c.mu.Lock()
	c.lastID = 0
	c.pendingFocus = 0
	c.detail = nil
	c.detailSeq++
	c.leaveSpeciesLocation()
	c.mu.Unlock()

	c.addLog("Progress reset")
	c.play(sound.CueClick)
	c.render()
}

// SetPage moves to page, clamped to the valid range.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	c.page = model.ClampPage(page)
	c.mu.Unlock()
	c.play(sound.CueClick)
	c.render()
}

// NextPage moves one page forward.
func (c *Controller) NextPage() {
	c.SetPage(c.Page() + 1)
}

// PrevPage moves one page back.
func (c *Controller) PrevPage() {
	c.SetPage(c.Page() - 1)
}

// Page returns the current page.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

package controller

import (
	"context"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
	"github.com/K4zzu/Nfc-PokeDex/internal/navigation"
)

// Visit enters the app on loc. A location that encodes a species captures
// it with origin link; any other location closes the detail view.
func (c *Controller) Visit(ctx context.Context, loc navigation.Location) error {
	if id, ok := loc.ID(); ok {
		c.nav.Navigate(loc)
		return c.HandleIdentified(ctx, id, model.OriginLink)
	}
	c.mu.Lock()
	c.nav.Navigate(loc)
	c.detail = nil
	c.detailSeq++
	c.mu.Unlock()
	c.render()
	return nil
}

// Start subscribes to external navigation changes and processes the
// current location like Visit. The returned function unsubscribes.
func (c *Controller) Start(ctx context.Context) (stop func()) {
	c.mu.Lock()
	c.listenCtx = ctx
	c.mu.Unlock()

	stop = c.nav.OnExternalChange(c)
	if id, ok := c.nav.ReadCurrentID(); ok {
		_ = c.HandleIdentified(ctx, id, model.OriginLink) //nolint:errcheck // logged and cued inside
	} else {
		c.render()
	}
	return stop
}

// Revisit opens the detail of id after external navigation, without
// capturing.
func (c *Controller) Revisit(id model.ID) {
	c.mu.Lock()
	ctx := c.listenCtx
	c.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	_ = c.HandleIdentified(ctx, id, model.OriginRevisit) //nolint:errcheck // logged and cued inside
}

// Dismiss closes the detail view after external navigation to a location
// without a species.
func (c *Controller) Dismiss() {
	c.closeDetailOnly()
}

func (c *Controller) closeDetailOnly() {
	c.mu.Lock()
	c.detail = nil
	c.detailSeq++
	c.mu.Unlock()
	c.render()
}

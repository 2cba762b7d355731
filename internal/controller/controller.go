package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/K4zzu/Nfc-PokeDex/internal/highlight"
	"github.com/K4zzu/Nfc-PokeDex/internal/model"
	"github.com/K4zzu/Nfc-PokeDex/internal/navigation"
	"github.com/K4zzu/Nfc-PokeDex/internal/sound"
)

// DefaultLogLimit caps the session log.
const DefaultLogLimit = 500

// Renderer draws a View. It may be called from several goroutines.
type Renderer interface {
	Render(v View)
}

// Store is the persisted captured set.
type Store interface {
	IsCaptured(id model.ID) bool
	Record(ctx context.Context, id model.ID) (bool, error)
	ResetAll(ctx context.Context)
	Count() int
	Degraded() bool
}

// SpeciesCache provides species records.
type SpeciesCache interface {
	Get(ctx context.Context, id model.ID) (*model.Species, bool)
	Peek(id model.ID) (*model.Species, bool)
	Loading(id model.ID) bool
	Reset()
	LookupName(ctx context.Context, name string) (model.ID, error)
	Prefetch(ctx context.Context, ids []model.ID, limit int) error
}

// Metrics receives activity counts.
type Metrics interface {
	Captured(origin model.Origin)
	ScanEvent(result string)
	FetchFailed()
	DetailOpened()
}

type nopMetrics struct{}

func (nopMetrics) Captured(model.Origin) {}
func (nopMetrics) ScanEvent(string)      {}
func (nopMetrics) FetchFailed()          {}
func (nopMetrics) DetailOpened()         {}

// Controller is the capture state machine.
type Controller struct {
	store      Store
	cache      SpeciesCache
	nav        *navigation.Sync
	highlights *highlight.Scheduler

	renderer Renderer
	sound    sound.Player
	metrics  Metrics
	logger   *slog.Logger
	now      func() time.Time

	serials           map[string]model.ID
	logLimit          int
	highlightDuration time.Duration

	mu           sync.Mutex
	page         int
	lastID       model.ID
	pendingFocus model.ID
	detail       *detailState
	detailSeq    uint64
	log          []model.LogEntry
	scanning     bool
	starting     bool
	stopScan     context.CancelFunc
	scanSeq      uint64
	listenCtx    context.Context
}

type detailState struct {
	id     model.ID
	record *model.Species
}

// Option configures a Controller.
type Option func(*Controller)

// WithRenderer sets the renderer.
func WithRenderer(r Renderer) Option {
	return func(c *Controller) {
		c.renderer = r
	}
}

// WithSound sets the cue player.
func WithSound(p sound.Player) Option {
	return func(c *Controller) {
		c.sound = p
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithSerials sets the tag serial to species table.
func WithSerials(table map[string]model.ID) Option {
	return func(c *Controller) {
		c.serials = table
	}
}

// WithLogLimit caps the session log. Non-positive values keep the default.
func WithLogLimit(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.logLimit = n
		}
	}
}

// WithHighlightDuration sets how long a grid highlight lasts.
func WithHighlightDuration(d time.Duration) Option {
	return func(c *Controller) {
		c.highlightDuration = d
	}
}

// WithClock replaces the session log clock.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// New creates a Controller on page 1.
func New(store Store, cache SpeciesCache, nav *navigation.Sync, opts ...Option) *Controller {
	c := &Controller{
		store:             store,
		cache:             cache,
		nav:               nav,
		sound:             sound.Nop{},
		metrics:           nopMetrics{},
		now:               time.Now,
		logLimit:          DefaultLogLimit,
		highlightDuration: highlight.DefaultDuration,
		page:              1,
		listenCtx:         context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.highlights = highlight.New(c.highlightDuration, c.render)
	return c
}

// Close cancels pending highlights and any running scan without
// rendering. The controller must not be used afterwards.
func (c *Controller) Close() {
	c.highlights.Clear()

	c.mu.Lock()
	cancel := c.stopScan
	c.scanning = false
	c.stopScan = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// HandleFetchFailure reports a failed species fetch. It is meant to be
// installed as the cache's failure hook.
func (c *Controller) HandleFetchFailure(id model.ID, err error) {
	c.logger.Debug("fetch failure detail", "id", int(id), "error", err)
	c.addLog(fmt.Sprintf("Error fetching data for species %s", id))
	c.metrics.FetchFailed()
	c.play(sound.CueError)
}

// addLog appends to the session log and mirrors the line to the logger.
// It must not be called with c.mu held.
func (c *Controller) addLog(msg string) {
	c.logger.Info(msg)
	c.appendLog(msg)
}

// appendLog appends to the session log only, dropping the oldest entries
// past the limit.
func (c *Controller) appendLog(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = append(c.log, model.LogEntry{Time: c.now(), Message: msg})
	if over := len(c.log) - c.logLimit; over > 0 {
		c.log = append(c.log[:0:0], c.log[over:]...)
	}
}

func (c *Controller) play(cue sound.Cue) {
	c.sound.Play(cue)
}

func (c *Controller) render() {
	if c.renderer == nil {
		return
	}
	c.renderer.Render(c.View())
}

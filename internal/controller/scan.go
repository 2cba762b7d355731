package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/K4zzu/Nfc-PokeDex/internal/metrics"
	"github.com/K4zzu/Nfc-PokeDex/internal/model"
	"github.com/K4zzu/Nfc-PokeDex/internal/resolver"
	"github.com/K4zzu/Nfc-PokeDex/internal/scan"
	"github.com/K4zzu/Nfc-PokeDex/internal/sound"
)

// HandleScan processes one tag read. The serial table is consulted first,
// then each record in order; the first one that yields a species id is
// captured. A read without any id is model.ErrUnrecognizedPayload.
func (c *Controller) HandleScan(ctx context.Context, ev model.ScanEvent) error {
	serial := ev.Serial
	if serial == "" {
		serial = "(unknown)"
	}
	// The raw serial stays out of the logger; the handler fingerprints it.
	c.logger.Info("tag read", "serial", ev.Serial, "records", len(ev.Records))
	c.appendLog("Tag read. Serial: " + serial)

	if id, ok := resolver.FromSerial(ev.Serial, c.serials); ok {
		c.metrics.ScanEvent(metrics.ScanCaptured)
		return c.HandleIdentified(ctx, id, model.OriginScan)
	}

	for _, rec := range ev.Records {
		text, err := resolver.DecodeRecord(rec)
		if err != nil {
			c.logger.Debug("record not decoded", "kind", rec.Kind.String(), "error", err)
			c.addLog("Error reading tag record")
			c.play(sound.CueError)
			continue
		}
		if text == "" {
			continue
		}
		c.addLog("Payload: " + text)
		if id, ok := resolver.FromText(text); ok {
			c.metrics.ScanEvent(metrics.ScanCaptured)
			return c.HandleIdentified(ctx, id, model.OriginScan)
		}
	}

	c.addLog("Could not extract a species id from the tag")
	c.metrics.ScanEvent(metrics.ScanUnrecognized)
	c.play(sound.CueError)
	c.render()
	return model.ErrUnrecognizedPayload
}

// HandleScanError reports a failed tag read.
func (c *Controller) HandleScanError(err error) {
	c.logger.Debug("tag read failed", "error", err)
	c.addLog("Error reading the tag. Try again.")
	c.metrics.ScanEvent(metrics.ScanReadError)
	c.play(sound.CueError)
	c.render()
}

// HandleManual treats free text as a capture request.
func (c *Controller) HandleManual(ctx context.Context, text string) error {
	id, ok := resolver.FromText(text)
	if !ok {
		c.addLog(fmt.Sprintf("Invalid id %q", text))
		c.play(sound.CueError)
		c.render()
		return fmt.Errorf("%w: %q", model.ErrInvalidIdentifier, text)
	}
	return c.HandleIdentified(ctx, id, model.OriginManual)
}

// StartScan starts src and feeds its events to HandleScan until ctx ends,
// StopScan is called, or src closes. The returned channel is closed when
// scanning has stopped. A source that cannot start is reported as
// model.ErrPermissionDenied and scanning stays off.
func (c *Controller) StartScan(ctx context.Context, src scan.Source) (<-chan struct{}, error) {
	// The slot is claimed before src.Start so that a concurrent call
	// cannot start a second source.
	c.mu.Lock()
	if c.scanning || c.starting {
		c.mu.Unlock()
		return nil, ErrScanRunning
	}
	c.starting = true
	c.mu.Unlock()

	scanCtx, cancel := context.WithCancel(ctx)
	events, errs, err := src.Start(scanCtx)
	if err != nil {
		cancel()
		c.mu.Lock()
		c.starting = false
		c.mu.Unlock()
		c.logger.Warn("scan start failed", "error", err)
		c.addLog("Permission denied or error starting the scan")
		c.play(sound.CueError)
		c.render()
		if !errors.Is(err, model.ErrPermissionDenied) {
			err = fmt.Errorf("%w: %w", model.ErrPermissionDenied, err)
		}
		return nil, err
	}

	c.mu.Lock()
	c.starting = false
	c.scanning = true
	c.stopScan = cancel
	c.scanSeq++
	seq := c.scanSeq
	c.mu.Unlock()

	c.addLog("Hold a tag near the reader")
	c.play(sound.CueClick)
	c.render()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		c.pumpScan(scanCtx, events, errs)

		c.mu.Lock()
		stillOurs := c.scanning && c.scanSeq == seq
		if stillOurs {
			c.scanning = false
			c.stopScan = nil
		}
		c.mu.Unlock()
		if stillOurs {
			c.render()
		}
	}()
	return done, nil
}

func (c *Controller) pumpScan(ctx context.Context, events <-chan model.ScanEvent, errs <-chan error) {
	for events != nil || errs != nil {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			_ = c.HandleScan(ctx, ev) //nolint:errcheck // logged and cued inside
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			c.HandleScanError(err)
		}
	}
}

// StopScan stops a running scan.
func (c *Controller) StopScan() {
	c.mu.Lock()
	if !c.scanning {
		c.mu.Unlock()
		return
	}
	cancel := c.stopScan
	c.scanning = false
	c.stopScan = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.addLog("Scan stopped")
	c.play(sound.CueClick)
	c.render()
}

// Scanning reports whether a scan is running.
func (c *Controller) Scanning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scanning
}

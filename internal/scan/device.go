package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// Reading is one tag read as emitted by a reader bridge.
type Reading struct {
	SerialNumber string        `json:"serialNumber,omitempty"`
	Records      []ReadingItem `json:"records,omitempty"`
}

// ReadingItem is one NDEF record. Data is base64 in JSON.
type ReadingItem struct {
	RecordType string `json:"recordType"`
	Encoding   string `json:"encoding,omitempty"`
	Data       []byte `json:"data,omitempty"`
}

// Event converts r to a model.ScanEvent.
func (r Reading) Event() model.ScanEvent {
	ev := model.ScanEvent{Serial: r.SerialNumber}
	for _, item := range r.Records {
		ev.Records = append(ev.Records, model.Record{
			Kind:     model.ParseRecordKind(item.RecordType),
			Data:     item.Data,
			Encoding: item.Encoding,
		})
	}
	return ev
}

// ParseReading decodes one JSON reading line.
func ParseReading(line string) (model.ScanEvent, error) {
	var r Reading
	if err := json.Unmarshal([]byte(line), &r); err != nil {
		return model.ScanEvent{}, fmt.Errorf("%w: %w", ErrMalformedReading, err)
	}
	return r.Event(), nil
}

// Device reads JSON readings from a reader bridge path.
type Device struct {
	path string
}

// NewDevice returns a Device for path.
func NewDevice(path string) *Device {
	return &Device{path: path}
}

// Path returns the device path.
func (d *Device) Path() string {
	return d.path
}

// Start implements Source. A missing or inaccessible device is reported as
// model.ErrPermissionDenied.
func (d *Device) Start(ctx context.Context) (<-chan model.ScanEvent, <-chan error, error) {
	f, err := os.Open(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %w", model.ErrPermissionDenied, err)
		}
		return nil, nil, fmt.Errorf("failed to open reader %s: %w", d.path, err)
	}

	events := make(chan model.ScanEvent)
	errs := make(chan error, 1)

	go func() {
		<-ctx.Done()
		_ = f.Close()
	}()
	go pump(ctx, f, func(line string) (model.ScanEvent, bool, error) {
		if strings.TrimSpace(line) == "" {
			return model.ScanEvent{}, false, nil
		}
		ev, err := ParseReading(line)
		if err != nil {
			return model.ScanEvent{}, false, err
		}
		return ev, true, nil
	}, events, errs)
	return events, errs, nil
}

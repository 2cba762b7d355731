package scan

import (
	"context"
	"io"
	"strings"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// Simulator emits one text-record event per non-blank input line.
type Simulator struct {
	r io.Reader
}

// NewSimulator returns a Simulator reading from r.
func NewSimulator(r io.Reader) *Simulator {
	return &Simulator{r: r}
}

// Start implements Source.
func (s *Simulator) Start(ctx context.Context) (<-chan model.ScanEvent, <-chan error, error) {
	events := make(chan model.ScanEvent)
	errs := make(chan error, 1)
	go pump(ctx, s.r, func(line string) (model.ScanEvent, bool, error) {
		line = strings.TrimSpace(line)
		if line == "" {
			return model.ScanEvent{}, false, nil
		}
		return model.ScanEvent{Records: []model.Record{model.TextRecord(line)}}, true, nil
	}, events, errs)
	return events, errs, nil
}

package scan

import (
	"bufio"
	"context"
	"io"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// Source produces scan events.
//
// Start begins reading. Both returned channels are closed when ctx ends or
// the underlying input is exhausted. A non-nil error means scanning could
// not start.
type Source interface {
	Start(ctx context.Context) (<-chan model.ScanEvent, <-chan error, error)
}

// maxLineSize bounds one input line.
const maxLineSize = 64 * 1024

// pump reads lines from r and hands each one to parse until ctx ends or r
// is exhausted. It owns and closes both channels.
func pump(ctx context.Context, r io.Reader, parse func(string) (model.ScanEvent, bool, error),
	events chan<- model.ScanEvent, errs chan<- error) {
	defer close(events)
	defer close(errs)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	for sc.Scan() {
		ev, ok, err := parse(sc.Text())
		switch {
		case err != nil:
			select {
			case errs <- err:
			case <-ctx.Done():
				return
			}
		case ok:
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
	if err := sc.Err(); err != nil && ctx.Err() == nil {
		select {
		case errs <- err:
		case <-ctx.Done():
		}
	}
}

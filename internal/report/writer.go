package report

import (
	"io"
	"time"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// Writer exports a Collection.
type Writer interface {
	// Write outputs the collection and returns the number of bytes written.
	Write(c *Collection) (int, error)
}

// MultiWriter writes to multiple Writers in order and stops on the first
// error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the collection to all configured Writers.
func (m *MultiWriter) Write(c *Collection) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(c)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Collection is an export of the captured set.
type Collection struct {
	GeneratedAt   time.Time `json:"generatedAt"`
	TotalCaptured int       `json:"totalCaptured"`
	MaxID         int       `json:"maxId"`
	LastID        model.ID  `json:"lastId,omitempty"`
	Entries       []Entry   `json:"entries"`
}

// Entry is one captured species. Fields other than ID are empty when the
// record could not be fetched.
type Entry struct {
	ID       model.ID       `json:"id"`
	Name     string         `json:"name,omitempty"`
	Types    []string       `json:"types,omitempty"`
	WeightKg float64        `json:"weightKg,omitempty"`
	HeightM  float64        `json:"heightM,omitempty"`
	Stats    map[string]int `json:"stats,omitempty"`
	ImageURL string         `json:"imageUrl"`
	Fetched  bool           `json:"fetched"`
}

// RecordLookup returns the cached record of a species.
type RecordLookup func(id model.ID) (*model.Species, bool)

// NewCollection builds a Collection for the captured ids in the given
// order.
func NewCollection(ids []model.ID, lookup RecordLookup, lastID model.ID, now time.Time) *Collection {
	c := &Collection{
		GeneratedAt:   now,
		TotalCaptured: len(ids),
		MaxID:         model.MaxID,
		LastID:        lastID,
		Entries:       make([]Entry, 0, len(ids)),
	}
	for _, id := range ids {
		e := Entry{ID: id, ImageURL: model.ImageURL(id)}
		if lookup != nil {
			if s, ok := lookup(id); ok && s != nil {
				e.Fetched = true
				e.Name = s.Name
				e.Types = s.TypeNames()
				e.WeightKg = s.WeightKg()
				e.HeightM = s.HeightM()
				e.Stats = speciesStats(s)
			}
		}
		c.Entries = append(c.Entries, e)
	}
	return c
}

// Progress returns the captured share in percent.
func (c *Collection) Progress() float64 {
	if c.MaxID == 0 {
		return 0
	}
	return float64(c.TotalCaptured) * 100 / float64(c.MaxID)
}

// Complete reports whether every species is captured.
func (c *Collection) Complete() bool {
	return c.MaxID > 0 && c.TotalCaptured >= c.MaxID
}

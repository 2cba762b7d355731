package navigation

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
	"github.com/K4zzu/Nfc-PokeDex/internal/resolver"
)

// Location is the path and query part of an address.
type Location struct {
	Path  string
	Query url.Values
}

// Root is the location with no species encoded.
var Root = Location{Path: "/"}

// ParseLocation accepts an absolute URL, a path, or a path with a query.
// Scheme, host and fragment are discarded.
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("invalid location %q: %w", raw, err)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return Location{Path: path, Query: u.Query()}, nil
}

// CanonicalPath returns the canonical location path for id.
func CanonicalPath(id model.ID) string {
	return "/pokemon/" + strconv.Itoa(int(id))
}

// CanonicalLocation returns the canonical location for id.
func CanonicalLocation(id model.ID) Location {
	return Location{Path: CanonicalPath(id)}
}

// ID returns the species encoded in l, if any.
func (l Location) ID() (model.ID, bool) {
	return resolver.FromLocation(l.Path, l.Query)
}

// String returns the path with its encoded query.
func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = "/"
	}
	if q := l.Query.Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

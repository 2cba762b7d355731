package model

import (
	"fmt"
	"strconv"
)

// Collection bounds.
const (
	// MaxID is the highest species number in the national dex covered by
	// the app. Identifiers outside [1, MaxID] are never stored.
	MaxID = 898

	// PageSize is the number of cards shown per grid page.
	PageSize = 20
)

// ID is a validated species identifier in the range [1, MaxID].
//
// The zero value is not a valid ID and is used as "none" by APIs that
// return an (ID, bool) pair.
type ID int

// NewID converts n to an ID, rejecting out-of-range values.
func NewID(n int) (ID, error) {
	id := ID(n)
	if !id.Valid() {
		return 0, fmt.Errorf("%w: %d is outside 1-%d", ErrInvalidIdentifier, n, MaxID)
	}
	return id, nil
}

// Valid reports whether the ID lies within [1, MaxID].
func (id ID) Valid() bool {
	return id >= 1 && id <= MaxID
}

// Int returns the ID as a plain int.
func (id ID) Int() int {
	return int(id)
}

// String returns the zero-padded dex label, e.g. "#025".
func (id ID) String() string {
	return fmt.Sprintf("#%03d", int(id))
}

// Key returns the decimal form used as a persisted map key and in URLs.
func (id ID) Key() string {
	return strconv.Itoa(int(id))
}

// Page returns the 1-based grid page that contains the ID.
func (id ID) Page() int {
	return (int(id) + PageSize - 1) / PageSize
}

// TotalPages returns the number of grid pages needed for all IDs.
func TotalPages() int {
	return (MaxID + PageSize - 1) / PageSize
}

// ClampPage restricts page to [1, TotalPages()].
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	if last := TotalPages(); page > last {
		return last
	}
	return page
}

// PageBounds returns the first and last ID shown on the given page.
// Out-of-range pages are clamped first.
func PageBounds(page int) (first, last ID) {
	page = ClampPage(page)
	first = ID((page-1)*PageSize + 1)
	last = ID(min(page*PageSize, MaxID))
	return first, last
}

// PageIDs returns every ID shown on the given page in grid order.
func PageIDs(page int) []ID {
	first, last := PageBounds(page)
	ids := make([]ID, 0, int(last-first)+1)
	for id := first; id <= last; id++ {
		ids = append(ids, id)
	}
	return ids
}

// ImageURL returns the official artwork URL for a species.
func ImageURL(id ID) string {
	return "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/" + id.Key() + ".png"
}

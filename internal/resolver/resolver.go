package resolver

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

var (
	// bareNumber finds the first standalone run of 1-4 digits.
	bareNumber = regexp.MustCompile(`\b(\d{1,4})\b`)

	// pathStyle finds ".../pokemon/<digits>" anywhere in free text.
	pathStyle = regexp.MustCompile(`(?i)pokemon/(\d{1,4})`)

	// routePath is the canonical location route, anchored at the end of
	// the path with an optional trailing slash.
	routePath = regexp.MustCompile(`(?i)/pokemon/(\d{1,4})/?$`)

	// queryDigits validates query parameter values before parsing.
	queryDigits = regexp.MustCompile(`^\d{1,4}$`)

	// allDigits detects numeric search queries of any length.
	allDigits = regexp.MustCompile(`^\d+$`)
)

// queryKeys are consulted in order; the first non-empty value wins.
var queryKeys = []string{"id", "pokemon"}

// NameLookup resolves a species name to its ID through an external service.
type NameLookup func(ctx context.Context, name string) (model.ID, error)

// FromText extracts an ID from free text such as a tag payload.
//
// The first bare 1-4 digit token wins when it is in range, even if a
// path-style ID appears later in the text. Only when that token is missing
// or out of range is the ".../pokemon/<n>" form tried.
func FromText(raw string) (model.ID, bool) {
	if raw == "" {
		return 0, false
	}
	if m := bareNumber.FindStringSubmatch(raw); m != nil {
		if id, ok := parseID(m[1]); ok {
			return id, true
		}
	}
	if m := pathStyle.FindStringSubmatch(raw); m != nil {
		return parseID(m[1])
	}
	return 0, false
}

// FromLocation extracts an ID from a location's path and query.
// The "/pokemon/<n>" route takes priority over the "id" and "pokemon"
// query parameters.
func FromLocation(path string, query url.Values) (model.ID, bool) {
	if m := routePath.FindStringSubmatch(path); m != nil {
		if id, ok := parseID(m[1]); ok {
			return id, true
		}
	}

	var value string
	for _, key := range queryKeys {
		if v := query.Get(key); v != "" {
			value = v
			break
		}
	}
	if value == "" || !queryDigits.MatchString(value) {
		return 0, false
	}
	return parseID(value)
}

// FromQuery resolves a search query. All-digit queries are only
// range-checked; anything else is handed to lookup. Lookup failures and
// unknown names resolve to none.
func FromQuery(ctx context.Context, query string, lookup NameLookup) (model.ID, bool) {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return 0, false
	}
	if allDigits.MatchString(key) {
		return parseID(key)
	}
	if lookup == nil {
		return 0, false
	}
	id, err := lookup(ctx, key)
	if err != nil || !id.Valid() {
		return 0, false
	}
	return id, true
}

// FromSerial looks a tag serial number up in a serial-to-ID table.
// Entries mapping to out-of-range IDs are ignored.
func FromSerial(serial string, table map[string]model.ID) (model.ID, bool) {
	if serial == "" || len(table) == 0 {
		return 0, false
	}
	id, ok := table[serial]
	if !ok || !id.Valid() {
		return 0, false
	}
	return id, true
}

// parseID converts a digit string to a range-checked ID.
func parseID(digits string) (model.ID, bool) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	id := model.ID(n)
	if !id.Valid() {
		return 0, false
	}
	return id, true
}

package model

// Species is the immutable record fetched from the remote species API.
// Field names and JSON tags follow the upstream payload so responses can be
// decoded directly; unknown upstream fields are ignored.
type Species struct {
	// ID is the numeric species identifier reported by the API.
	ID ID `json:"id"`

	// Name is the lowercase species name, e.g. "pikachu".
	Name string `json:"name"`

	// Types lists the species' elemental types in slot order.
	Types []TypeSlot `json:"types"`

	// Stats lists base stats (hp, attack, ...).
	Stats []Stat `json:"stats"`

	// Weight is expressed in tenths of a kilogram.
	Weight int `json:"weight"`

	// Height is expressed in tenths of a metre.
	Height int `json:"height"`
}

// TypeSlot is one entry of a species' type list.
type TypeSlot struct {
	Slot int          `json:"slot"`
	Type NamedElement `json:"type"`
}

// Stat is one base stat of a species.
type Stat struct {
	BaseStat int          `json:"base_stat"`
	Stat     NamedElement `json:"stat"`
}

// NamedElement is the {name, url} pair the API uses for references.
type NamedElement struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// defaultType is used when a record has no type information.
const defaultType = "normal"

// PrimaryType returns the first type name, or "normal" when none is known.
// It is safe to call on a nil record.
func (s *Species) PrimaryType() string {
	if s == nil || len(s.Types) == 0 || s.Types[0].Type.Name == "" {
		return defaultType
	}
	return s.Types[0].Type.Name
}

// TypeNames returns the type names in slot order.
func (s *Species) TypeNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Types))
	for _, t := range s.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// WeightKg returns the weight in kilograms.
func (s *Species) WeightKg() float64 {
	if s == nil {
		return 0
	}
	return float64(s.Weight) / 10
}

// HeightM returns the height in metres.
func (s *Species) HeightM() float64 {
	if s == nil {
		return 0
	}
	return float64(s.Height) / 10
}

// FetchState describes where a species record is in its fetch lifecycle.
type FetchState int

const (
	// FetchNotRequested means no fetch has been attempted since the last reset.
	FetchNotRequested FetchState = iota

	// FetchInFlight means exactly one request for the ID is outstanding.
	FetchInFlight

	// FetchResolved means the record is cached for the session.
	FetchResolved

	// FetchFailed means the last attempt failed; a later Get retries.
	FetchFailed
)

// String returns a lowercase label for the state.
func (s FetchState) String() string {
	switch s {
	case FetchNotRequested:
		return "not-requested"
	case FetchInFlight:
		return "in-flight"
	case FetchResolved:
		return "resolved"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

package model

import "time"

// Origin tells the controller where an identified ID came from.
type Origin int

const (
	// OriginScan is a tag read from a ScanSource.
	OriginScan Origin = iota

	// OriginManual is free text typed by the user.
	OriginManual

	// OriginSearch is a name or number search.
	OriginSearch

	// OriginRevisit is back/forward navigation to a location that already
	// encodes the ID. It never records a capture.
	OriginRevisit

	// OriginLink is entering the app on a location that encodes an ID,
	// which is how phones open URL tags.
	OriginLink
)

// String returns the origin label used in logs and metrics.
func (o Origin) String() string {
	switch o {
	case OriginScan:
		return "scan"
	case OriginManual:
		return "manual"
	case OriginSearch:
		return "search"
	case OriginRevisit:
		return "revisit"
	case OriginLink:
		return "link"
	default:
		return "unknown"
	}
}

// Captures reports whether identifying an ID from this origin records a capture.
func (o Origin) Captures() bool {
	return o != OriginRevisit
}

// LogEntry is one line of the user-facing session log.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

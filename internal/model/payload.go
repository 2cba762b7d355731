package model

import "strings"

// RecordKind is the decoded variant of a tag payload record.
type RecordKind int

const (
	// RecordUnknown is any record type the app cannot turn into text.
	RecordUnknown RecordKind = iota

	// RecordText is a well-known text record carrying an encoding label.
	RecordText

	// RecordURL is a URI record; its bytes are always UTF-8.
	RecordURL

	// RecordRaw is an opaque payload (MIME or unknown type) that is still
	// worth reading as UTF-8 text.
	RecordRaw
)

// String returns the record kind label.
func (k RecordKind) String() string {
	switch k {
	case RecordText:
		return "text"
	case RecordURL:
		return "url"
	case RecordRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// ParseRecordKind maps a Web NFC recordType name onto a RecordKind.
// Types that never carry readable data ("empty", "smart-poster", external
// types) map to RecordUnknown.
func ParseRecordKind(recordType string) RecordKind {
	switch strings.ToLower(strings.TrimSpace(recordType)) {
	case "text":
		return RecordText
	case "url", "absolute-url":
		return RecordURL
	case "mime", "unknown", "opaque":
		return RecordRaw
	default:
		return RecordUnknown
	}
}

// Record is a single payload record read from a tag.
type Record struct {
	// Kind selects the decode rule.
	Kind RecordKind `json:"kind"`

	// Data holds the raw payload bytes.
	Data []byte `json:"data"`

	// Encoding is the text encoding label for RecordText (e.g. "utf-8",
	// "utf-16"). Empty means UTF-8.
	Encoding string `json:"encoding,omitempty"`
}

// TextRecord builds a UTF-8 text record.
func TextRecord(text string) Record {
	return Record{Kind: RecordText, Data: []byte(text), Encoding: "utf-8"}
}

// URLRecord builds a URI record.
func URLRecord(uri string) Record {
	return Record{Kind: RecordURL, Data: []byte(uri)}
}

// ScanEvent is one tag read. Both fields are optional: a tag may expose
// only a serial number, only records, or neither.
type ScanEvent struct {
	Serial  string   `json:"serial,omitempty"`
	Records []Record `json:"records,omitempty"`
}

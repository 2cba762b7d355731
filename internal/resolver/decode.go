package resolver

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// defaultEncoding is used for text records without an encoding label.
const defaultEncoding = "utf-8"

// DecodeRecord turns a payload record into text.
//
// Text records are decoded with their encoding label, which uses the WHATWG
// label set (the same labels a browser TextDecoder accepts). URL and raw
// records are read as UTF-8. Unknown record kinds and empty raw payloads
// are rejected with model.ErrUnrecognizedPayload.
func DecodeRecord(rec model.Record) (string, error) {
	switch rec.Kind {
	case model.RecordText:
		label := rec.Encoding
		if label == "" {
			label = defaultEncoding
		}
		return decodeWith(label, rec.Data)
	case model.RecordURL:
		return decodeUTF8(rec.Data), nil
	case model.RecordRaw:
		if len(rec.Data) == 0 {
			return "", fmt.Errorf("%w: empty %s record", model.ErrUnrecognizedPayload, rec.Kind)
		}
		return decodeUTF8(rec.Data), nil
	default:
		return "", fmt.Errorf("%w: %s record", model.ErrUnrecognizedPayload, rec.Kind)
	}
}

// decodeWith decodes data using the named WHATWG encoding.
func decodeWith(label string, data []byte) (string, error) {
	enc, err := htmlindex.Get(strings.ToLower(strings.TrimSpace(label)))
	if err != nil {
		return "", fmt.Errorf("unsupported text encoding %q: %w", label, err)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s payload: %w", label, err)
	}
	return string(out), nil
}

// decodeUTF8 mirrors a lenient UTF-8 decoder: invalid sequences become
// U+FFFD instead of failing the whole record.
func decodeUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "�")
}

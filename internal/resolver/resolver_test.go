package resolver

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// TestFromText tests ID extraction from free-form tag text.
func TestFromText(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		text   string
		wantID model.ID
		wantOK bool
	}{
		{"prefixed payload", "POKEMON:25", 25, true},
		{"bare number", "25", 25, true},
		{"path style url", "https://dex.example/pokemon/133", 133, true},
		{"path style without host", ".../pokemon/133", 133, true},
		{"path style is case insensitive", "HTTPS://DEX.EXAMPLE/POKEMON/7", 7, true},
		{"out of range number", "9999", 0, false},
		{"zero is out of range", "0", 0, false},
		{"no digits", "hello tag", 0, false},
		{"empty text", "", 0, false},
		{"digits glued to letters are not a token", "abc25def", 0, false},
		{"five digit run is not split", "12345", 0, false},
		{"first bare number wins over later path", "tag 7 https://x/pokemon/25", 7, true},
		{"out of range bare number falls back to path", "9999 pokemon/25", 25, true},
		{"out of range path after out of range number", "9999 pokemon/0", 0, false},
		{"path digit run is truncated then range checked", "pokemon/12345", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			id, ok := FromText(tc.text)
			if ok != tc.wantOK || id != tc.wantID {
				t.Errorf("FromText(%q) = (%d, %v), expected (%d, %v)", tc.text, id, ok, tc.wantID, tc.wantOK)
			}
		})
	}
}

// TestFromLocation tests ID extraction from a location path and query.
func TestFromLocation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		path   string
		query  string
		wantID model.ID
		wantOK bool
	}{
		{"canonical route", "/pokemon/25", "", 25, true},
		{"trailing slash", "/pokemon/25/", "", 25, true},
		{"uppercase route", "/POKEMON/25", "", 25, true},
		{"nested prefix", "/app/pokemon/42", "", 42, true},
		{"route must end the path", "/pokemon/25/stats", "", 0, false},
		{"route out of range", "/pokemon/999", "", 0, false},
		{"pokemon query", "/", "pokemon=25", 25, true},
		{"id query", "/", "id=25", 25, true},
		{"id takes priority", "/", "id=25&pokemon=30", 25, true},
		{"empty id falls through to pokemon", "/", "id=&pokemon=30", 30, true},
		{"non numeric id does not fall through", "/", "id=abc&pokemon=30", 0, false},
		{"five digit query rejected", "/", "id=00025", 0, false},
		{"leading zeros accepted", "/", "id=025", 25, true},
		{"path beats query", "/pokemon/1", "id=2", 1, true},
		{"out of range path falls back to query", "/pokemon/0", "id=3", 3, true},
		{"nothing encoded", "/", "", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			q, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatalf("bad query: %v", err)
			}
			id, ok := FromLocation(tc.path, q)
			if ok != tc.wantOK || id != tc.wantID {
				t.Errorf("FromLocation(%q, %q) = (%d, %v), expected (%d, %v)",
					tc.path, tc.query, id, ok, tc.wantID, tc.wantOK)
			}
		})
	}
}

// TestFromLocationRoundTrip tests that every canonical route resolves back
// to its own ID.
func TestFromLocationRoundTrip(t *testing.T) {
	t.Parallel()

	for i := 1; i <= model.MaxID; i++ {
		id := model.ID(i)
		got, ok := FromLocation("/pokemon/"+id.Key(), nil)
		if !ok || got != id {
			t.Fatalf("round trip failed for %d: got (%d, %v)", i, got, ok)
		}
	}
}

// TestFromQuery tests search query resolution.
func TestFromQuery(t *testing.T) {
	t.Parallel()

	lookup := func(_ context.Context, name string) (model.ID, error) {
		switch name {
		case "pikachu":
			return 25, nil
		case "broken":
			return 0, errors.New("network down")
		case "missingno":
			return 0, nil
		default:
			return 0, model.ErrFetchFailure
		}
	}

	testCases := []struct {
		name   string
		query  string
		wantID model.ID
		wantOK bool
	}{
		{"numeric query", "25", 25, true},
		{"numeric query is trimmed", "  133 ", 133, true},
		{"numeric query out of range", "9999", 0, false},
		{"long numeric query out of range", "123456789012345678901234567890", 0, false},
		{"name is lowercased before lookup", "  PikaChu ", 25, true},
		{"lookup error", "broken", 0, false},
		{"lookup returns invalid id", "missingno", 0, false},
		{"unknown name", "agumon", 0, false},
		{"empty query", "   ", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			id, ok := FromQuery(context.Background(), tc.query, lookup)
			if ok != tc.wantOK || id != tc.wantID {
				t.Errorf("FromQuery(%q) = (%d, %v), expected (%d, %v)", tc.query, id, ok, tc.wantID, tc.wantOK)
			}
		})
	}

	t.Run("nil lookup resolves names to none", func(t *testing.T) {
		t.Parallel()
		if _, ok := FromQuery(context.Background(), "pikachu", nil); ok {
			t.Error("expected no match without lookup")
		}
	})
}

// TestFromSerial tests the serial-number table lookup.
func TestFromSerial(t *testing.T) {
	t.Parallel()

	table := map[string]model.ID{
		"04:A2:B1:11:22:33:44": 25,
		"04:FF:FF:FF:FF:FF:FF": 1000,
	}

	if id, ok := FromSerial("04:A2:B1:11:22:33:44", table); !ok || id != 25 {
		t.Errorf("expected 25, got (%d, %v)", id, ok)
	}
	if _, ok := FromSerial("04:FF:FF:FF:FF:FF:FF", table); ok {
		t.Error("expected out-of-range mapping to be ignored")
	}
	if _, ok := FromSerial("", table); ok {
		t.Error("expected empty serial to miss")
	}
	if _, ok := FromSerial("04:A2:B1:11:22:33:44", nil); ok {
		t.Error("expected nil table to miss")
	}
}

package species

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

const pikachuJSON = `{
  "id": 25,
  "name": "pikachu",
  "weight": 60,
  "height": 4,
  "types": [{"slot": 1, "type": {"name": "electric", "url": "https://pokeapi.co/api/v2/type/13/"}}],
  "stats": [
    {"base_stat": 35, "stat": {"name": "hp"}},
    {"base_stat": 55, "stat": {"name": "attack"}}
  ],
  "abilities": [{"ability": {"name": "static"}}]
}`

// newSpeciesServer serves pikachu under /25 and /pikachu and 404 elsewhere.
func newSpeciesServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/pokemon/25", "/api/v2/pokemon/pikachu":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(pikachuJSON))
		case "/api/v2/pokemon/garbage":
			_, _ = w.Write([]byte("{not json"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestNewClient tests base URL validation.
func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("rejects relative base URL", func(t *testing.T) {
		t.Parallel()
		if _, err := NewClient("/api/v2/pokemon"); !errors.Is(err, ErrInvalidBaseURL) {
			t.Errorf("expected ErrInvalidBaseURL, got %v", err)
		}
	})

	t.Run("creates SOCKS5 dialer without connecting", func(t *testing.T) {
		t.Parallel()
		_, err := NewClient("https://pokeapi.co/api/v2/pokemon", WithSOCKS5Proxy("127.0.0.1:9050"))
		if err != nil {
			t.Errorf("expected SOCKS5 dialer to be created lazily, got %v", err)
		}
	})

	t.Run("applies timeout", func(t *testing.T) {
		t.Parallel()
		c, err := NewClient("https://pokeapi.co/api/v2/pokemon", WithTimeout(3*time.Second))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.httpClient.Timeout != 3*time.Second {
			t.Errorf("expected 3s timeout, got %v", c.httpClient.Timeout)
		}
	})
}

// TestClientFetch tests species retrieval against a fake API.
func TestClientFetch(t *testing.T) {
	t.Parallel()

	srv := newSpeciesServer(t)

	gotUA := make(chan string, 1)
	uaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA <- r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(pikachuJSON))
	}))
	t.Cleanup(uaSrv.Close)

	t.Run("decodes record by id", func(t *testing.T) {
		t.Parallel()

		c, err := NewClient(srv.URL + "/api/v2/pokemon/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s, err := c.Fetch(context.Background(), "25")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.ID != 25 || s.Name != "pikachu" {
			t.Errorf("unexpected record: %+v", s)
		}
		if s.PrimaryType() != "electric" {
			t.Errorf("expected electric, got %q", s.PrimaryType())
		}
		if len(s.Stats) != 2 || s.Stats[0].BaseStat != 35 {
			t.Errorf("unexpected stats: %+v", s.Stats)
		}
	})

	t.Run("name is lowercased", func(t *testing.T) {
		t.Parallel()

		c, _ := NewClient(srv.URL + "/api/v2/pokemon")
		s, err := c.Fetch(context.Background(), " Pikachu ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.ID != 25 {
			t.Errorf("expected 25, got %d", s.ID)
		}
	})

	t.Run("404 is a fetch failure", func(t *testing.T) {
		t.Parallel()

		c, _ := NewClient(srv.URL + "/api/v2/pokemon")
		_, err := c.Fetch(context.Background(), "agumon")
		if !errors.Is(err, model.ErrFetchFailure) {
			t.Fatalf("expected ErrFetchFailure, got %v", err)
		}
		if !IsNotFound(err) {
			t.Errorf("expected IsNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), "HTTP 404") {
			t.Errorf("expected status in message, got %q", err.Error())
		}
	})

	t.Run("malformed body is a fetch failure", func(t *testing.T) {
		t.Parallel()

		c, _ := NewClient(srv.URL + "/api/v2/pokemon")
		_, err := c.Fetch(context.Background(), "garbage")
		if !errors.Is(err, model.ErrFetchFailure) {
			t.Errorf("expected ErrFetchFailure, got %v", err)
		}
		if IsNotFound(err) {
			t.Error("malformed body should not be reported as not found")
		}
	})

	t.Run("unreachable server is a fetch failure", func(t *testing.T) {
		t.Parallel()

		dead := httptest.NewServer(http.NotFoundHandler())
		base := dead.URL
		dead.Close()

		c, _ := NewClient(base)
		_, err := c.Fetch(context.Background(), "25")
		if !errors.Is(err, model.ErrFetchFailure) {
			t.Errorf("expected ErrFetchFailure, got %v", err)
		}
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		c, _ := NewClient(uaSrv.URL, WithUserAgent("PokeDex-Test/1.0"))
		if _, err := c.Fetch(context.Background(), "25"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ua := <-gotUA; ua != "PokeDex-Test/1.0" {
			t.Errorf("expected user agent, got %q", ua)
		}
	})
}

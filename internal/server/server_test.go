package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/K4zzu/Nfc-PokeDex/internal/capture"
	"github.com/K4zzu/Nfc-PokeDex/internal/controller"
	"github.com/K4zzu/Nfc-PokeDex/internal/metrics"
	"github.com/K4zzu/Nfc-PokeDex/internal/model"
	"github.com/K4zzu/Nfc-PokeDex/internal/navigation"
	"github.com/K4zzu/Nfc-PokeDex/internal/species"
)

// stubFetcher answers every numeric id and "pikachu".
type stubFetcher struct{}

func (stubFetcher) Fetch(_ context.Context, key string) (*model.Species, error) {
	if key == "pikachu" {
		return &model.Species{ID: 25, Name: "pikachu"}, nil
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return nil, &species.StatusError{Key: key, Code: http.StatusNotFound}
	}
	return &model.Species{ID: model.ID(n), Name: "species-" + key}, nil
}

// newTestServer starts a server over a fresh controller.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	history := navigation.NewMemoryHistory(navigation.Root)
	cache := species.NewCache(stubFetcher{})
	rec := metrics.New()
	ctrl := controller.New(
		capture.Open(ctx, capture.NewMemoryBackend()),
		cache,
		navigation.NewSync(history),
		controller.WithMetrics(rec),
	)
	cache.OnFailure(ctrl.HandleFetchFailure)
	stop := ctrl.Start(ctx)
	t.Cleanup(stop)

	srv := httptest.NewServer(New(ctrl, history, WithMetricsHandler(rec.Handler())).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, viewResponse) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, srv.URL+path, r)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var vr viewResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return resp.StatusCode, vr
}

// TestVisit tests entering the app by URL.
func TestVisit(t *testing.T) {
	t.Parallel()

	t.Run("species path captures and opens detail", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		status, vr := do(t, srv, http.MethodGet, "/pokemon/25", "")
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if vr.View.TotalCaptured != 1 || vr.View.LastID != 25 {
			t.Errorf("expected 25 captured, got %+v", vr.View)
		}
		if vr.View.Detail == nil || vr.View.Detail.ID != 25 {
			t.Errorf("expected detail 25, got %+v", vr.View.Detail)
		}
		if vr.View.Location != "/pokemon/25" {
			t.Errorf("unexpected location %q", vr.View.Location)
		}
	})

	t.Run("query parameter captures", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		_, vr := do(t, srv, http.MethodGet, "/?id=7", "")
		if vr.View.LastID != 7 {
			t.Errorf("expected 7, got %d", vr.View.LastID)
		}
	})

	t.Run("out of range path captures nothing", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		status, vr := do(t, srv, http.MethodGet, "/pokemon/9999", "")
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if vr.View.TotalCaptured != 0 || vr.View.Detail != nil {
			t.Errorf("expected no state change, got %+v", vr.View)
		}
	})
}

// TestScanRoute tests posted tag readings.
func TestScanRoute(t *testing.T) {
	t.Parallel()

	t.Run("text record captures", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		body := `{"serialNumber":"04:a2","records":[{"recordType":"text","data":"UE9LRU1PTjoyNQ=="}]}`
		status, vr := do(t, srv, http.MethodPost, "/api/scan", body)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", status, vr.Error)
		}
		if vr.View.LastID != 25 {
			t.Errorf("expected 25, got %d", vr.View.LastID)
		}
	})

	t.Run("unrecognized payload is rejected", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		body := `{"records":[{"recordType":"text","data":"aGVsbG8="}]}`
		status, vr := do(t, srv, http.MethodPost, "/api/scan", body)
		if status != http.StatusUnprocessableEntity {
			t.Errorf("expected 422, got %d", status)
		}
		if vr.Error == "" || vr.View.TotalCaptured != 0 {
			t.Errorf("unexpected response: %+v", vr)
		}
	})

	t.Run("malformed body is a read error", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		status, vr := do(t, srv, http.MethodPost, "/api/scan", "{nope")
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
		found := false
		for _, e := range vr.View.Log {
			if strings.Contains(e.Message, "Error reading the tag") {
				found = true
			}
		}
		if !found {
			t.Error("expected read error in the session log")
		}
	})
}

// TestManualRoute tests manual entry.
func TestManualRoute(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	status, vr := do(t, srv, http.MethodPost, "/api/manual", `{"text":"133"}`)
	if status != http.StatusOK || vr.View.LastID != 133 {
		t.Errorf("expected 133 captured, got %d %+v", status, vr.View)
	}

	status, _ = do(t, srv, http.MethodPost, "/api/manual", `{"text":"9999"}`)
	if status != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", status)
	}
}

// TestSearchRoute tests search by name and number.
func TestSearchRoute(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	get := func(q string) (int, searchResponse) {
		resp, err := srv.Client().Get(srv.URL + "/api/search?q=" + q)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		var sr searchResponse
		if resp.StatusCode != http.StatusBadRequest {
			if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
		}
		return resp.StatusCode, sr
	}

	status, sr := get("pikachu")
	if status != http.StatusOK || !sr.Found || sr.ID != 25 {
		t.Errorf("expected pikachu to resolve to 25, got %d %+v", status, sr)
	}
	if sr.View.TotalCaptured != 0 || sr.View.Detail != nil {
		t.Error("search must not capture or open uncaptured species")
	}
	if sr.View.Page != 2 {
		t.Errorf("expected focus on page 2, got %d", sr.View.Page)
	}

	if status, sr = get("agumon"); status != http.StatusNotFound || sr.Found {
		t.Errorf("expected not found, got %d %+v", status, sr)
	}
	if status, _ = get(""); status != http.StatusBadRequest {
		t.Errorf("expected 400 for empty query, got %d", status)
	}
}

// TestDetailRoutes tests card opening and closing.
func TestDetailRoutes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	if status, _ := do(t, srv, http.MethodPost, "/api/card/7", ""); status != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for uncaptured card, got %d", status)
	}

	do(t, srv, http.MethodGet, "/pokemon/7", "")
	_, vr := do(t, srv, http.MethodPost, "/api/detail/close", "")
	if vr.View.Detail != nil {
		t.Error("expected detail to be closed")
	}
	if vr.View.Location != "/" {
		t.Errorf("expected root location, got %q", vr.View.Location)
	}

	status, vr := do(t, srv, http.MethodPost, "/api/card/7", "")
	if status != http.StatusOK || vr.View.Detail == nil || vr.View.Detail.ID != 7 {
		t.Errorf("expected detail 7, got %d %+v", status, vr.View.Detail)
	}

	if status, _ := do(t, srv, http.MethodPost, "/api/card/abc", ""); status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
}

// TestHistoryRoutes tests external navigation.
func TestHistoryRoutes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	do(t, srv, http.MethodGet, "/pokemon/25", "")
	do(t, srv, http.MethodGet, "/pokemon/7", "")

	status, vr := do(t, srv, http.MethodPost, "/api/history/back", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if vr.View.Detail == nil || vr.View.Detail.ID != 25 {
		t.Errorf("expected detail 25 after back, got %+v", vr.View.Detail)
	}
	if vr.View.TotalCaptured != 2 {
		t.Errorf("revisit must not capture, got %d", vr.View.TotalCaptured)
	}

	_, vr = do(t, srv, http.MethodPost, "/api/history/back", "")
	if vr.View.Detail != nil {
		t.Error("expected detail to close at the root location")
	}

	if status, _ = do(t, srv, http.MethodPost, "/api/history/back", ""); status != http.StatusConflict {
		t.Errorf("expected 409 at the first entry, got %d", status)
	}

	_, vr = do(t, srv, http.MethodPost, "/api/history/forward", "")
	if vr.View.Detail == nil || vr.View.Detail.ID != 25 {
		t.Errorf("expected detail 25 after forward, got %+v", vr.View.Detail)
	}
}

// TestPageRoute tests paging.
func TestPageRoute(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	if _, vr := do(t, srv, http.MethodPost, "/api/page/3", ""); vr.View.Page != 3 || vr.View.First != 41 {
		t.Errorf("expected page 3, got %d", vr.View.Page)
	}
	if _, vr := do(t, srv, http.MethodPost, "/api/page/999", ""); vr.View.Page != model.TotalPages() {
		t.Errorf("expected clamped page, got %d", vr.View.Page)
	}
	if status, _ := do(t, srv, http.MethodPost, "/api/page/x", ""); status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
}

// TestResetRoute tests confirmed resets.
func TestResetRoute(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	do(t, srv, http.MethodGet, "/pokemon/25", "")

	status, vr := do(t, srv, http.MethodPost, "/api/reset", `{}`)
	if status != http.StatusBadRequest || vr.Error != ErrResetNotConfirmed.Error() {
		t.Errorf("expected unconfirmed reset to fail, got %d %q", status, vr.Error)
	}
	if vr.View.TotalCaptured != 1 {
		t.Error("unconfirmed reset must not change state")
	}

	status, vr = do(t, srv, http.MethodPost, "/api/reset", `{"confirm":true}`)
	if status != http.StatusOK || vr.View.TotalCaptured != 0 || vr.View.LastID != 0 {
		t.Errorf("expected empty collection, got %d %+v", status, vr.View)
	}
}

// TestMetricsRoute tests the Prometheus endpoint.
func TestMetricsRoute(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	do(t, srv, http.MethodGet, "/pokemon/25", "")

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `pokedex_captures_total{origin="link"} 1`) {
		t.Errorf("expected link capture counter, got:\n%s", body)
	}
}

// TestListenAndServe tests graceful shutdown.
func TestListenAndServe(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	history := navigation.NewMemoryHistory(navigation.Root)
	ctrl := controller.New(capture.Open(ctx, nil), species.NewCache(stubFetcher{}), navigation.NewSync(history))
	s := New(ctrl, history)

	done := make(chan error, 1)
	go func() {
		done <- s.ListenAndServe(ctx, "127.0.0.1:0")
	}()
	cancel()
	if err := <-done; err != nil {
		t.Errorf("expected clean shutdown, got %v", err)
	}
}

// TestStatusFor tests error mapping.
func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "no error", err: nil, want: http.StatusOK},
		{name: "invalid id", err: model.ErrInvalidIdentifier, want: http.StatusUnprocessableEntity},
		{name: "unrecognized payload", err: model.ErrUnrecognizedPayload, want: http.StatusUnprocessableEntity},
		{name: "not captured", err: controller.ErrNotCaptured, want: http.StatusUnprocessableEntity},
		{name: "anything else", err: io.ErrUnexpectedEOF, want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/K4zzu/Nfc-PokeDex/internal/model"
)

// TestRecorder tests counter updates.
func TestRecorder(t *testing.T) {
	t.Parallel()

	r := New()
	r.Captured(model.OriginScan)
	r.Captured(model.OriginScan)
	r.Captured(model.OriginManual)
	r.ScanEvent(ScanUnrecognized)
	r.FetchFailed()
	r.DetailOpened()
	r.DetailOpened()

	if got := testutil.ToFloat64(r.captures.WithLabelValues("scan")); got != 2 {
		t.Errorf("expected 2 scan captures, got %v", got)
	}
	if got := testutil.ToFloat64(r.captures.WithLabelValues("manual")); got != 1 {
		t.Errorf("expected 1 manual capture, got %v", got)
	}
	if got := testutil.ToFloat64(r.scanEvents.WithLabelValues(ScanUnrecognized)); got != 1 {
		t.Errorf("expected 1 unrecognized scan, got %v", got)
	}
	if got := testutil.ToFloat64(r.fetchFailures); got != 1 {
		t.Errorf("expected 1 fetch failure, got %v", got)
	}
	if got := testutil.ToFloat64(r.detailOpens); got != 2 {
		t.Errorf("expected 2 detail opens, got %v", got)
	}
}

// TestHandler tests the exposition endpoint.
func TestHandler(t *testing.T) {
	t.Parallel()

	r := New()
	r.Captured(model.OriginLink)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `pokedex_captures_total{origin="link"} 1`) {
		t.Errorf("capture counter missing from output:\n%s", body)
	}
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/K4zzu/Nfc-PokeDex/internal/controller"
	"github.com/K4zzu/Nfc-PokeDex/internal/model"
	"github.com/K4zzu/Nfc-PokeDex/internal/navigation"
	"github.com/K4zzu/Nfc-PokeDex/internal/scan"
)

const (
	// maxBodySize limits request bodies.
	maxBodySize = 64 * 1024

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server serves the controller over HTTP.
type Server struct {
	ctrl    *controller.Controller
	history *navigation.MemoryHistory
	metrics http.Handler
	logger  *slog.Logger
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithMetricsHandler mounts h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server. history must be the history the controller's
// navigation.Sync was built on; its Back and Forward drive external
// navigation.
func New(ctrl *controller.Controller, history *navigation.MemoryHistory, opts ...Option) *Server {
	s := &Server{ctrl: ctrl, history: history}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleVisit)
	r.Get("/pokemon/*", s.handleVisit)

	r.Route("/api", func(r chi.Router) {
		r.Get("/view", s.handleView)
		r.Post("/scan", s.handleScan)
		r.Post("/manual", s.handleManual)
		r.Get("/search", s.handleSearch)
		r.Post("/detail/close", s.handleCloseDetail)
		r.Post("/card/{id}", s.handleShowCard)
		r.Post("/history/back", s.handleHistory(-1))
		r.Post("/history/forward", s.handleHistory(1))
		r.Post("/page/{n}", s.handlePage)
		r.Post("/reset", s.handleReset)
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// logRequests logs each request at Debug.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// viewResponse is the body of every answer.
type viewResponse struct {
	View  controller.View `json:"view"`
	Error string          `json:"error,omitempty"`
}

// searchResponse is the body of a search answer.
type searchResponse struct {
	Found bool            `json:"found"`
	ID    model.ID        `json:"id,omitempty"`
	View  controller.View `json:"view"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}

func (s *Server) writeView(w http.ResponseWriter, status int, err error) {
	resp := viewResponse{View: s.ctrl.View()}
	if err != nil {
		resp.Error = err.Error()
	}
	s.writeJSON(w, status, resp)
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(v)
}

// statusFor maps controller errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, model.ErrInvalidIdentifier),
		errors.Is(err, model.ErrUnrecognizedPayload),
		errors.Is(err, controller.ErrNotCaptured):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleVisit(w http.ResponseWriter, r *http.Request) {
	loc := navigation.Location{Path: r.URL.Path, Query: r.URL.Query()}
	err := s.ctrl.Visit(r.Context(), loc)
	s.writeView(w, statusFor(err), err)
}

func (s *Server) handleView(w http.ResponseWriter, _ *http.Request) {
	s.writeView(w, http.StatusOK, nil)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var reading scan.Reading
	if err := decodeBody(r, &reading); err != nil {
		s.ctrl.HandleScanError(err)
		s.writeView(w, http.StatusBadRequest, err)
		return
	}
	err := s.ctrl.HandleScan(r.Context(), reading.Event())
	s.writeView(w, statusFor(err), err)
}

// manualRequest is the body of POST /api/manual.
type manualRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleManual(w http.ResponseWriter, r *http.Request) {
	var req manualRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeView(w, http.StatusBadRequest, err)
		return
	}
	err := s.ctrl.HandleManual(r.Context(), req.Text)
	s.writeView(w, statusFor(err), err)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		s.writeView(w, http.StatusBadRequest, errors.New("missing query parameter q"))
		return
	}
	id, found := s.ctrl.Search(r.Context(), q)
	resp := searchResponse{Found: found, ID: id, View: s.ctrl.View()}
	status := http.StatusOK
	if !found {
		status = http.StatusNotFound
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) handleCloseDetail(w http.ResponseWriter, _ *http.Request) {
	s.ctrl.CloseDetail()
	s.writeView(w, http.StatusOK, nil)
}

func (s *Server) handleShowCard(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeView(w, http.StatusBadRequest, err)
		return
	}
	err = s.ctrl.ShowCard(r.Context(), model.ID(n))
	s.writeView(w, statusFor(err), err)
}

func (s *Server) handleHistory(delta int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var moved bool
		if delta < 0 {
			moved = s.history.Back()
		} else {
			moved = s.history.Forward()
		}
		if !moved {
			s.writeView(w, http.StatusConflict, errors.New("no history entry in that direction"))
			return
		}
		s.writeView(w, http.StatusOK, nil)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		s.writeView(w, http.StatusBadRequest, err)
		return
	}
	s.ctrl.SetPage(n)
	s.writeView(w, http.StatusOK, nil)
}

// resetRequest is the body of POST /api/reset.
type resetRequest struct {
	Confirm bool `json:"confirm"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeBody(r, &req); err != nil || !req.Confirm {
		s.writeView(w, http.StatusBadRequest, ErrResetNotConfirmed)
		return
	}
	s.ctrl.Reset(r.Context())
	s.writeView(w, http.StatusOK, nil)
}

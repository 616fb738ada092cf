// Package server exposes extraction over HTTP: upload a workbook, get the result as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid"
)

// DefaultMaxUpload bounds the size of an uploaded workbook.
const DefaultMaxUpload = 32 << 20

// Server handles extraction requests. Each request runs its own independent extraction.
type Server struct {
	opts      shelfgrid.Options
	log       *slog.Logger
	router    *chi.Mux
	maxUpload int64
}

// New creates a server extracting with opts.
func New(opts shelfgrid.Options) *Server {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		opts:      opts,
		log:       log,
		router:    chi.NewRouter(),
		maxUpload: DefaultMaxUpload,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/v1/extract", s.handleExtract)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
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

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleExtract reads the multipart "file" field and extracts it.
// The optional "sheet" query parameter selects the preferred worksheet.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing multipart field \"file\": " + err.Error()})
		return
	}
	defer file.Close()

	opts := s.opts
	if sheet := r.URL.Query().Get("sheet"); sheet != "" {
		opts.Sheet = sheet
	}
	opts.Logger = s.log.With("request_id", middleware.GetReqID(r.Context()))

	result, err := shelfgrid.ExtractReader(file, hdr.Filename, opts)
	writeJSON(w, statusFor(err), result)
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, shelfgrid.ErrNoHeaderRowFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, shelfgrid.ErrCannotOpenFile):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

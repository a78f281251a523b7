package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"loadmaster/internal/logging"
	"loadmaster/internal/manifest"
	"loadmaster/internal/metrics"
	"loadmaster/internal/render"
)

// Source supplies the current mission and roster.
type Source interface {
	Snapshot(ctx context.Context) (manifest.MissionConfiguration, []manifest.PersonnelRecord, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (manifest.MissionConfiguration, []manifest.PersonnelRecord, error)

// Snapshot calls f.
func (f SourceFunc) Snapshot(ctx context.Context) (manifest.MissionConfiguration, []manifest.PersonnelRecord, error) {
	return f(ctx)
}

// ManifestResponse is the /api/manifest payload.
type ManifestResponse struct {
	Mission  manifest.MissionConfiguration `json:"mission"`
	Sections []manifest.Section            `json:"sections"`
	Totals   manifest.Totals               `json:"totals"`
}

// Server is the preview HTTP server.
type Server struct {
	bind    string
	source  Source
	render  render.Options
	logger  *slog.Logger
	metrics *metrics.Metrics

	handler  http.Handler
	listener net.Listener
	server   *http.Server
}

// New builds a server for bind. The handler is usable without Start.
func New(bind string, source Source, opts render.Options, logger *slog.Logger, m *metrics.Metrics) *Server {
	s := &Server{
		bind:    strings.TrimSpace(bind),
		source:  source,
		render:  opts,
		logger:  logging.NewComponentLogger(logger, "preview"),
		metrics: m,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleDocument)
	mux.HandleFunc("/manifest.txt", s.handleArtifact(render.FormatText))
	mux.HandleFunc("/manifest.csv", s.handleArtifact(render.FormatCSV))
	mux.HandleFunc("/manifest.html", s.handleArtifact(render.FormatHTML))
	mux.HandleFunc("/api/manifest", s.handleManifest)
	if m != nil {
		mux.Handle("/metrics", m.Handler())
	}
	s.handler = s.instrument(mux)

	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the instrumented router.
func (s *Server) Handler() http.Handler { return s.handler }

// Start listens on the bind address and serves until ctx ends.
func (s *Server) Start(ctx context.Context) error {
	if s.bind == "" {
		return errors.New("preview bind address is empty")
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("preview listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("preview server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("preview server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.handleArtifact(render.FormatHTML)(w, r)
}

func (s *Server) handleArtifact(format render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		mission, composed, err := s.compose(r.Context())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		renderer, err := render.New(format, s.render)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		started := time.Now()
		artifact, err := renderer.Render(r.Context(), composed, mission)
		s.metrics.RecordRender(string(format), time.Since(started), err == nil)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", artifact.ContentType)
		if format != render.FormatHTML {
			w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", artifact.Name))
		}
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(artifact.Data)
		}
	}
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	mission, composed, err := s.compose(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, ManifestResponse{
		Mission:  mission,
		Sections: composed.Sections(),
		Totals:   composed.Totals(),
	})
}

func (s *Server) compose(ctx context.Context) (manifest.MissionConfiguration, manifest.ComposedManifest, error) {
	mission, records, err := s.source.Snapshot(ctx)
	if err != nil {
		return mission, manifest.ComposedManifest{}, fmt.Errorf("load workspace: %w", err)
	}
	s.metrics.SetRosterSize(len(records))
	return mission, manifest.Compose(records, mission), nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

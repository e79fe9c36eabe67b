// Package api exposes the HTTP interface for the lawwatch service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lawwatch/lawwatch/internal/classify"
	"github.com/lawwatch/lawwatch/internal/clock"
	"github.com/lawwatch/lawwatch/internal/dataset"
	"github.com/lawwatch/lawwatch/internal/dates"
	"github.com/lawwatch/lawwatch/internal/metrics"
	"github.com/lawwatch/lawwatch/internal/view"
)

// Server wires HTTP handlers to the dataset artifact.
type Server struct {
	router      chi.Router
	datasetPath string
	clk         clock.Clock
	loc         *time.Location
	logger      *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(datasetPath string, clk clock.Clock, loc *time.Location, logger *zap.Logger) *Server {
	s := &Server{
		datasetPath: datasetPath,
		clk:         clk,
		loc:         loc,
		logger:      logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(timeoutMiddleware(60 * time.Second))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/data/documents.json", s.serveDataset)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/documents", s.listDocuments)
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	if _, err := os.Stat(s.datasetPath); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready", "dataset": "absent"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready", "dataset": "present"})
}

// serveDataset streams the raw crawl artifact. Clients always revalidate
// so a fresh crawl is picked up without waiting out browser caches.
func (s *Server) serveDataset(w http.ResponseWriter, _ *http.Request) {
	data, err := os.ReadFile(s.datasetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "dataset not generated yet")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to read dataset")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("dataset write failed", zap.Error(err))
	}
}

type documentsResponse struct {
	Documents []classify.Document `json:"documents"`
	Filtered  int                 `json:"filtered"`
	Total     int                 `json:"total"`
	Offset    int                 `json:"offset"`
	Limit     int                 `json:"limit"`
	Simple    bool                `json:"simple"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	filters, offset, limit, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ds, err := dataset.Load(s.datasetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "dataset not generated yet")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load dataset")
		return
	}

	now := s.clk.Now().In(s.loc)
	today := dates.Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
	enriched := classify.Enrich(ds.Documents, today)
	filtered := view.Apply(enriched, filters)

	page := filtered[min(offset, len(filtered)):]
	if len(page) > limit {
		page = page[:limit]
	}

	writeJSON(w, http.StatusOK, documentsResponse{
		Documents: page,
		Filtered:  len(filtered),
		Total:     len(enriched),
		Offset:    offset,
		Limit:     limit,
		Simple:    filters.SimpleView,
		UpdatedAt: ds.UpdatedAt,
	})
}

func parseQuery(r *http.Request) (view.Filters, int, int, error) {
	q := r.URL.Query()
	filters := view.DefaultFilters()

	filters.Search = q.Get("search")

	if raw := q.Get("sort"); raw != "" {
		mode := view.Sort(raw)
		if !view.ValidSort(mode) {
			return view.Filters{}, 0, 0, fmt.Errorf("invalid sort %q", raw)
		}
		filters.Sort = mode
	}
	if raw := q.Get("status"); raw != "" {
		for _, c := range classify.Categories {
			filters.Statuses[c] = false
		}
		for _, part := range strings.Split(raw, ",") {
			cat := classify.Category(strings.TrimSpace(part))
			if !classify.ValidCategory(cat) {
				return view.Filters{}, 0, 0, fmt.Errorf("invalid status %q", part)
			}
			filters.Statuses[cat] = true
		}
	}
	if raw := q.Get("region"); raw != "" {
		if raw != view.RegionAll && !classify.ValidRegion(classify.Region(raw)) {
			return view.Filters{}, 0, 0, fmt.Errorf("invalid region %q", raw)
		}
		filters.Region = raw
	}
	if raw := q.Get("range"); raw != "" {
		tr := view.TimeRange(raw)
		if !view.ValidTimeRange(tr) {
			return view.Filters{}, 0, 0, fmt.Errorf("invalid range %q", raw)
		}
		filters.TimeRange = tr
	}
	if raw := q.Get("simple"); raw != "" {
		simple, err := strconv.ParseBool(raw)
		if err != nil {
			return view.Filters{}, 0, 0, fmt.Errorf("invalid simple %q", raw)
		}
		filters.SimpleView = simple
	}

	offset, err := intParam(q.Get("offset"), 0)
	if err != nil || offset < 0 {
		return view.Filters{}, 0, 0, fmt.Errorf("invalid offset %q", q.Get("offset"))
	}
	limit, err := intParam(q.Get("limit"), view.DefaultChunkSize)
	if err != nil || limit <= 0 {
		return view.Filters{}, 0, 0, fmt.Errorf("invalid limit %q", q.Get("limit"))
	}

	return filters, offset, limit, nil
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-ID", uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", zap.Any("error", rec))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// Headers are already out by now; encode errors have nowhere to go.
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

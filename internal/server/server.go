// Package server exposes a record store over HTTP. It is the dev-mode
// counterpart of the managed remote store and the integration target for
// the HTTP store driver.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"storedesk/internal/record"
)

// Server serves the record-store API over a Store.
type Server struct {
	store record.Store
	log   *logrus.Logger
}

// New creates a Server. log must not be nil.
func New(store record.Store, log *logrus.Logger) *Server {
	return &Server{store: store, log: log}
}

// Router builds the chi router for the record-store API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/records/{kind}", func(r chi.Router) {
		r.Post("/query", s.handleQuery)
		r.Post("/", s.handleSave)
		r.Delete("/{id}", s.handleDelete)
	})

	return r
}

type queryRequest struct {
	Predicate record.Predicate `json:"predicate"`
}

type queryResponse struct {
	Records []record.Record `json:"records"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid query body")
		return
	}

	records, err := s.store.Query(r.Context(), kind, req.Predicate)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, queryResponse{Records: records})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	var rec record.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid record body")
		return
	}
	// The URL is authoritative for the kind.
	rec.Kind = kind

	saved, err := s.store.Save(r.Context(), rec)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	id := chi.URLParam(r, "id")

	if err := s.store.Delete(r.Context(), kind, id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, record.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, record.ErrRejected):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("writing response")
	}
}

// requestLogger logs one line per request with method, path, status, and
// duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).Round(time.Microsecond).String(),
		}).Info("request")
	})
}

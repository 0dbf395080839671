// Package server exposes the payment-request API over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/common"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/export"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/repository"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/scan"
)

// Scanner runs one invoice scan; scan.Pipeline satisfies this.
type Scanner interface {
	Run(ctx context.Context, fileName string, file []byte) (*scan.Result, error)
}

type Server struct {
	scanner Scanner
	entries repository.EntryStore
	export  *export.Service
	logger  *zap.Logger
}

func New(scanner Scanner, entries repository.EntryStore, exportSvc *export.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{scanner: scanner, entries: entries, export: exportSvc, logger: logger}
}

// Router builds the chi routing tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/scan", s.handleScan)
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", s.handleCreateEntry)
			r.Get("/", s.handleListEntries)
			r.Get("/export", s.handleExportEntries)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetEntry)
				r.Patch("/status", s.handleUpdateEntryStatus)
				r.Delete("/", s.handleDeleteEntry)
			})
		})
	})
	return r
}

// requestID tags every request with a UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(common.WithRequestID(r.Context(), id)))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := common.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("request_id", common.RequestIDFromContext(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func parseEntryID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, common.NewAppError("BAD_ID", "entry id must be a UUID", common.ErrInvalidInput)
	}
	return id, nil
}

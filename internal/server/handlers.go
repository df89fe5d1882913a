package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"companypicker/internal/eventbus"
	"companypicker/internal/store"
)

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, WelcomeMessage)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

// handleListCompanies returns the full catalog
func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	s.serveDocument(w, r, store.Catalog)
}

// handleListSelected returns the persisted selection
func (s *Server) handleListSelected(w http.ResponseWriter, r *http.Request) {
	s.serveDocument(w, r, store.Selection)
}

func (s *Server) serveDocument(w http.ResponseWriter, r *http.Request, c store.Collection) {
	doc, err := s.store.ReadDocument(r.Context(), c)
	if err != nil {
		s.serverError(w, r, "failed to load "+string(c), err)
		return
	}
	writeRawJSON(w, http.StatusOK, doc)
}

// handleReplaceSelected overwrites the selection with the request body as
// sent. The body must be a JSON array; its items are not inspected, counted
// or deduplicated, the client owns those rules.
func (s *Server) handleReplaceSelected(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeText(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeText(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	items, err := store.ParseArray(body)
	if err != nil {
		s.logger.Warn("rejected selection body", zap.Error(err))
		writeText(w, http.StatusBadRequest, "request body must be a JSON array")
		return
	}

	if err := s.store.WriteDocument(r.Context(), store.Selection, body); err != nil {
		s.serverError(w, r, "failed to save selection", err)
		return
	}

	s.logger.Info("selection saved", zap.Int("count", len(items)))
	if s.bus != nil {
		s.bus.Publish(eventbus.SelectionPersistedEvent{Count: len(items)})
	}
	writeText(w, http.StatusOK, "Selected companies saved")
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Error(msg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)
	writeText(w, http.StatusInternalServerError, "Internal server error")
}

func writeRawJSON(w http.ResponseWriter, status int, doc []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(doc)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}

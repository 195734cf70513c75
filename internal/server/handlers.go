package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hyperjump/kensaku/internal/models"
	"github.com/hyperjump/kensaku/internal/storage"
	"go.uber.org/zap"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("search request",
		zap.String("query", req.Query),
		zap.String("mode", req.Mode),
		zap.Int("limit", req.Limit))

	start := time.Now()
	messages, err := s.store.AllMessages(r.Context())
	if err != nil {
		s.logger.Error("loading messages failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	results, err := s.manager.Search(req.Query, messages, req.Mode)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	total := len(results)
	if len(results) > req.Limit {
		results = results[:req.Limit]
	}
	mode := req.Mode
	if mode == "" {
		mode = s.manager.DefaultMode()
	}
	s.respondJSON(w, http.StatusOK, &models.SearchResponse{
		Results:   results,
		Total:     total,
		Query:     req.Query,
		Mode:      mode,
		QueryTime: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var msg models.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg.Name == "" {
		s.respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := s.store.CreateMessage(r.Context(), &msg); err != nil {
		s.logger.Error("create message failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"name": msg.Name, "status": "stored"})
}

func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	msg, err := s.store.GetMessage(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrMessageNotFound) {
			s.respondError(w, http.StatusNotFound, "message not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, msg)
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if err := s.store.DeleteMessage(r.Context(), name); err != nil {
		if errors.Is(err, storage.ErrMessageNotFound) {
			s.respondError(w, http.StatusNotFound, "message not found")
			return
		}
		s.logger.Error("delete message failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountMessages(r.Context())
	if err != nil {
		s.logger.Error("status: count messages failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	modes := make([]string, 0, len(s.config.SearchModes))
	for _, mode := range s.config.SearchModes {
		if mode.Enabled && mode.Name != "semantic" {
			modes = append(modes, mode.Name)
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"messages": count,
		"config": map[string]interface{}{
			"default_mode":  s.manager.DefaultMode(),
			"enabled_modes": modes,
			"database_path": s.config.Storage.DatabasePath,
		},
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encoding response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

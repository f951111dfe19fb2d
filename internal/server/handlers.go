package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/sheet-scorer/internal/engine"
	"go.uber.org/zap"
)

var validate = validator.New()

// ScoreRequest is the body of POST /score.
type ScoreRequest struct {
	URL string `json:"url" validate:"required"`
}

// ScoreResponse carries the structured report and its text rendering.
type ScoreResponse struct {
	Result *engine.Result `json:"result"`
	Text   string         `json:"text"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: "Request body must be JSON like {\"url\": \"...\"}."})
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: "Please include the response sheet link in \"url\"."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	result, err := s.scorer.ScoreResponseSheet(ctx, req.URL)
	if err != nil {
		if engine.KindOf(err) == engine.KindCanceled && r.Context().Err() != nil {
			// Client went away; nothing to deliver.
			s.logger.Info("score request canceled by client", zap.String("url", req.URL))
			return
		}
		s.jsonResponse(w, HTTPStatus(err), ErrorResponse{
			Error:   string(engine.KindOf(err)),
			Message: engine.UserMessage(err),
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, ScoreResponse{Result: result, Text: result.Text()})
}

func (s *Server) handleRegistry(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"administrations": s.registry.Keys(),
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

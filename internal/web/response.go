package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vbonduro/campusfoods/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps an error from the foods service onto a status code.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		s.logger.Error("foods data unavailable", "path", r.URL.Path, "error", err)
		s.writeError(w, http.StatusServiceUnavailable, "foods data is temporarily unavailable")
	default:
		s.logger.Error("failed to list foods", "path", r.URL.Path, "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

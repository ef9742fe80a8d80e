package web

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/vbonduro/campusfoods/internal/imagestore"
)

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	key, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil || key == "" {
		s.writeError(w, http.StatusBadRequest, "image key required")
		return
	}

	rc, mimeType, err := s.images.Get(r.Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, imagestore.ErrNotFound):
			s.writeError(w, http.StatusNotFound, "image not found")
		case errors.Is(err, imagestore.ErrInvalidKey):
			s.logger.Warn("rejected image key", "key", key, "error", err)
			s.writeError(w, http.StatusBadRequest, "invalid image key")
		default:
			s.logger.Error("failed to open image", "key", key, "error", err)
			s.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	defer func() { _ = rc.Close() }()

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Error("failed to stream image", "key", key, "error", err)
	}
}

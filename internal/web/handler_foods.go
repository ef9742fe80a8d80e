package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Page size defaults differ per endpoint: the all-outlets listing is paged by
// default, the single-outlet listing returns everything unless asked.
const (
	defaultAllFoodsSize    = 10
	defaultOutletFoodsSize = 0
)

func (s *Server) handleListFoods(w http.ResponseWriter, r *http.Request) {
	page, size, err := pagingParams(r, defaultAllFoodsSize)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := s.service.GetAllFoodsMenuData(r.Context(), page, size)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleListOutletFoods(w http.ResponseWriter, r *http.Request) {
	outletID, err := strconv.ParseInt(chi.URLParam(r, "outletId"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid outlet id")
		return
	}

	page, size, err := pagingParams(r, defaultOutletFoodsSize)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := s.service.GetOutletFoodsMenuData(r.Context(), outletID, page, size)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, list)
}

// pagingParams reads the page and size query parameters, applying page 0 and
// defaultSize when they are absent.
func pagingParams(r *http.Request, defaultSize int) (page, size int, err error) {
	if page, err = nonNegativeParam(r, "page", 0); err != nil {
		return 0, 0, err
	}
	if size, err = nonNegativeParam(r, "size", defaultSize); err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

func nonNegativeParam(r *http.Request, name string, defaultVal int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	return v, nil
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Budorazhka/LastDance-sub001/internal/usecase"
)

type CabinetHandler struct {
	Cabinets *usecase.CabinetContext
}

func NewCabinetHandler(cabinets *usecase.CabinetContext) *CabinetHandler {
	return &CabinetHandler{Cabinets: cabinets}
}

func (h *CabinetHandler) Register(r chi.Router) {
	r.Route("/cabinets", func(r chi.Router) {
		r.Get("/", h.Options)
		r.Get("/hierarchy", h.Hierarchy)
		r.Post("/refresh", h.Refresh)
	})
}

func (h *CabinetHandler) Options(w http.ResponseWriter, r *http.Request) {
	c, err := h.Cabinets.Get(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Options)
}

func (h *CabinetHandler) Hierarchy(w http.ResponseWriter, r *http.Request) {
	c, err := h.Cabinets.Get(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Hierarchy)
}

// Refresh drops the cached build and rebuilds it from the current roster.
func (h *CabinetHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.Cabinets.Invalidate()
	c, err := h.Cabinets.Get(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

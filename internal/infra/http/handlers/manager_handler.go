package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
	"github.com/Budorazhka/LastDance-sub001/internal/usecase"
)

type ManagerHandler struct {
	Service *usecase.DistributionService
}

func NewManagerHandler(service *usecase.DistributionService) *ManagerHandler {
	return &ManagerHandler{Service: service}
}

func (h *ManagerHandler) Register(r chi.Router) {
	r.Route("/managers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Patch("/{managerId}", h.Patch)
		r.Delete("/{managerId}", h.Delete)
	})
}

func (h *ManagerHandler) List(w http.ResponseWriter, r *http.Request) {
	managers := h.Service.Store.Snapshot().Managers
	if managers == nil {
		managers = []entity.Manager{}
	}
	writeJSON(w, http.StatusOK, managers)
}

func (h *ManagerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateManagerInput
	if !decodeJSON(w, r, &input) {
		return
	}
	m, err := h.Service.AddManager(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *ManagerHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var input usecase.PatchManagerInput
	if !decodeJSON(w, r, &input) {
		return
	}
	m, err := h.Service.PatchManager(chi.URLParam(r, "managerId"), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *ManagerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RemoveManager(chi.URLParam(r, "managerId")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Budorazhka/LastDance-sub001/internal/usecase"
)

type DistributionHandler struct {
	Service *usecase.DistributionService
}

func NewDistributionHandler(service *usecase.DistributionService) *DistributionHandler {
	return &DistributionHandler{Service: service}
}

func (h *DistributionHandler) Register(r chi.Router) {
	r.Route("/distribution", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/rule", h.SetRule)
		r.Put("/manual-distributor", h.SetManualDistributor)
	})
}

func (h *DistributionHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Distribution())
}

func (h *DistributionHandler) SetRule(w http.ResponseWriter, r *http.Request) {
	var input usecase.SetRuleInput
	if !decodeJSON(w, r, &input) {
		return
	}
	out, err := h.Service.SetRule(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// SetManualDistributor accepts {"manager_id": null} to clear the distributor.
func (h *DistributionHandler) SetManualDistributor(w http.ResponseWriter, r *http.Request) {
	var input usecase.SetManualDistributorInput
	if !decodeJSON(w, r, &input) {
		return
	}
	out, err := h.Service.SetManualDistributor(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
	"github.com/Budorazhka/LastDance-sub001/internal/usecase"
)

type LeadPartnerHandler struct {
	Service *usecase.DistributionService
	Toggles *usecase.PermissionToggles
}

func NewLeadPartnerHandler(service *usecase.DistributionService, toggles *usecase.PermissionToggles) *LeadPartnerHandler {
	return &LeadPartnerHandler{Service: service, Toggles: toggles}
}

func (h *LeadPartnerHandler) Register(r chi.Router) {
	r.Route("/lead-partners", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Patch("/{leadPartnerId}", h.Patch)
		r.Delete("/{leadPartnerId}", h.Delete)
		r.Post("/{leadPartnerId}/permissions/{permission}/toggle", h.StageToggle)
	})
	r.Route("/permission-toggles", func(r chi.Router) {
		r.Get("/", h.ListPending)
		r.Post("/{token}/confirm", h.ConfirmToggle)
		r.Delete("/{token}", h.CancelToggle)
	})
}

func (h *LeadPartnerHandler) List(w http.ResponseWriter, r *http.Request) {
	partners := h.Service.Store.Snapshot().LeadPartners
	if partners == nil {
		partners = []entity.LeadPartner{}
	}
	writeJSON(w, http.StatusOK, partners)
}

func (h *LeadPartnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadPartnerInput
	if !decodeJSON(w, r, &input) {
		return
	}
	lp, err := h.Service.AddLeadPartner(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lp)
}

func (h *LeadPartnerHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var input usecase.PatchLeadPartnerInput
	if !decodeJSON(w, r, &input) {
		return
	}
	lp, err := h.Service.PatchLeadPartner(chi.URLParam(r, "leadPartnerId"), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lp)
}

func (h *LeadPartnerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RemoveLeadPartner(chi.URLParam(r, "leadPartnerId")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StageToggle only records the flip; the grant changes on confirm.
func (h *LeadPartnerHandler) StageToggle(w http.ResponseWriter, r *http.Request) {
	toggle, err := h.Toggles.Stage(chi.URLParam(r, "leadPartnerId"), chi.URLParam(r, "permission"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toggle)
}

func (h *LeadPartnerHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Toggles.Pending())
}

func (h *LeadPartnerHandler) ConfirmToggle(w http.ResponseWriter, r *http.Request) {
	lp, err := h.Toggles.Confirm(chi.URLParam(r, "token"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lp)
}

func (h *LeadPartnerHandler) CancelToggle(w http.ResponseWriter, r *http.Request) {
	if err := h.Toggles.Cancel(chi.URLParam(r, "token")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

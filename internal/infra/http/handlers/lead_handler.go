package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
	"github.com/Budorazhka/LastDance-sub001/internal/usecase"
)

type LeadHandler struct {
	Service     *usecase.DistributionService
	rateLimiter *RateLimiter
}

func NewLeadHandler(service *usecase.DistributionService, limiter *RateLimiter) *LeadHandler {
	if limiter == nil {
		limiter = NewRateLimiter(30, time.Minute)
	}
	return &LeadHandler{
		Service:     service,
		rateLimiter: limiter,
	}
}

func (h *LeadHandler) Register(r chi.Router) {
	r.Route("/leads", func(r chi.Router) {
		r.Post("/", h.AddLead)
		r.Get("/", h.ListLeads)
		r.Get("/{leadId}", h.GetLead)
		r.Put("/{leadId}/manager", h.AssignLead)
		r.Delete("/{leadId}/manager", h.UnassignLead)
		r.Put("/{leadId}/stage", h.SetStage)
	})
}

func (h *LeadHandler) AddLead(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, try again later")
		return
	}

	var input usecase.AddLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.Service.AddLead(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, output)
}

// ListLeads returns the whole pool, most recent first, or one queue with ?source=.
func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source == "" {
		writeJSON(w, http.StatusOK, nonNilLeads(h.Service.Store.Snapshot().Leads))
		return
	}

	if !entity.LeadSource(source).IsValid() {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_SOURCE", "unknown lead source: "+source)
		return
	}
	writeJSON(w, http.StatusOK, nonNilLeads(h.Service.Store.LeadsBySource(entity.LeadSource(source))))
}

func (h *LeadHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadId")
	lead, ok := h.Service.Store.Lead(leadID)
	if !ok {
		writeErrorResponse(w, http.StatusNotFound, usecase.CodeLeadNotFound, "lead not found: "+leadID)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) AssignLead(w http.ResponseWriter, r *http.Request) {
	var input usecase.AssignLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.ManagerID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "manager_id is required")
		return
	}

	lead, err := h.Service.AssignLead(r.Context(), chi.URLParam(r, "leadId"), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) UnassignLead(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Service.UnassignLead(chi.URLParam(r, "leadId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) SetStage(w http.ResponseWriter, r *http.Request) {
	var input usecase.SetStageInput
	if !decodeJSON(w, r, &input) {
		return
	}

	lead, err := h.Service.SetStage(chi.URLParam(r, "leadId"), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func nonNilLeads(leads []entity.Lead) []entity.Lead {
	if leads == nil {
		return []entity.Lead{}
	}
	return leads
}

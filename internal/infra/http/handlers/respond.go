package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Budorazhka/LastDance-sub001/internal/usecase"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  []fieldErrorEntry `json:"fields,omitempty"`
}

type fieldErrorEntry struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeServiceError maps usecase errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var validation usecase.ValidationErrors
	if errors.As(err, &validation) {
		resp := errorResponse{Error: "VALIDATION_FAILED", Message: "request is invalid"}
		for _, v := range validation {
			resp.Fields = append(resp.Fields, fieldErrorEntry{Field: v.Field, Message: v.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	var domain *usecase.DomainError
	if errors.As(err, &domain) {
		status := http.StatusNotFound
		if domain.Code == usecase.CodeManagerExists {
			status = http.StatusConflict
		}
		writeErrorResponse(w, status, domain.Code, domain.Message)
		return
	}

	var technical *usecase.TechnicalError
	if errors.As(err, &technical) {
		writeErrorResponse(w, http.StatusServiceUnavailable, technical.Code, technical.Message)
		return
	}

	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "unexpected error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return false
	}
	return true
}

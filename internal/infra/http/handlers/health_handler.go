package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Budorazhka/LastDance-sub001/internal/usecase"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type BrokerStatus interface {
	IsClosed() bool
}

type HealthHandler struct {
	Store     *usecase.LeadPoolStore
	Cabinets  *usecase.CabinetContext
	DB        Pinger
	Broker    BrokerStatus
	Version   string
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Leads        int               `json:"leads"`
	Managers     int               `json:"managers"`
	Rule         string            `json:"rule"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler accepts nil db and broker; they are reported as not configured.
func NewHealthHandler(store *usecase.LeadPoolStore, cabinets *usecase.CabinetContext, db Pinger, broker BrokerStatus, version string) *HealthHandler {
	return &HealthHandler{
		Store:     store,
		Cabinets:  cabinets,
		DB:        db,
		Broker:    broker,
		Version:   version,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		err := h.DB.Ping(ctx)
		cancel()
		if err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	if h.Broker != nil {
		if h.Broker.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	if h.Cabinets != nil && h.Cabinets.Built() {
		deps["cabinets"] = "built"
	} else {
		deps["cabinets"] = "pending"
	}

	status := "healthy"
	for _, v := range deps {
		switch v {
		case "healthy", "not configured", "built", "pending":
		default:
			status = "degraded"
		}
	}

	snapshot := h.Store.Snapshot()
	response := HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Leads:        len(snapshot.Leads),
		Managers:     len(snapshot.Managers),
		Rule:         string(snapshot.Rule),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}

package usecase

import (
	"context"

	"github.com/Budorazhka/LastDance-sub001/internal/infra/queue"
)

// AssignmentPublisher announces that a lead now belongs to a manager.
type AssignmentPublisher interface {
	PublishLeadAssigned(ctx context.Context, payload queue.LeadAssignedPayload) error
}

// RoutingObserver is told how every new lead was routed.
type RoutingObserver interface {
	LeadRouted(source string, mode RoutingMode, assigned bool)
	AssignmentChanged(kind string)
	NotificationFailed(channel string)
}

type noopObserver struct{}

func (noopObserver) LeadRouted(string, RoutingMode, bool) {}
func (noopObserver) AssignmentChanged(string)             {}
func (noopObserver) NotificationFailed(string)            {}

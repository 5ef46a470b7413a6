package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
	"github.com/Budorazhka/LastDance-sub001/internal/infra/queue"
)

type recordingPublisher struct {
	mu       sync.Mutex
	payloads []queue.LeadAssignedPayload
}

func (p *recordingPublisher) PublishLeadAssigned(_ context.Context, payload queue.LeadAssignedPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *recordingPublisher) published() []queue.LeadAssignedPayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.LeadAssignedPayload(nil), p.payloads...)
}

func TestAnnounceSkipsManagerMissingFromState(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := NewDistributionService(NewLeadPoolStore(PoolState{}), publisher, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	lead := entity.Lead{ID: "l1", Source: entity.SourcePrimary, StageID: entity.StageNew, ManagerID: entity.StringPtr("gone")}
	svc.announce(context.Background(), PoolState{}, lead, string(RoutingManual))

	assert.Empty(t, publisher.published())
}

func TestAssignLeadRacingRemoveManager(t *testing.T) {
	for round := 0; round < 50; round++ {
		publisher := &recordingPublisher{}
		store := NewLeadPoolStore(PoolState{
			Rule: entity.RuleManual,
			Managers: []entity.Manager{
				{ID: "A", Name: "Anna", Email: "anna@example.com", SourceTypes: []entity.LeadSource{entity.SourcePrimary}},
			},
			Leads: []entity.Lead{{ID: "l1", Source: entity.SourcePrimary, StageID: entity.StageNew}},
		})
		svc := NewDistributionService(store, publisher, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.AssignLead(context.Background(), "l1", AssignLeadInput{ManagerID: "A"})
		}()
		go func() {
			defer wg.Done()
			_ = svc.RemoveManager("A")
		}()
		wg.Wait()

		for _, p := range publisher.published() {
			require.Equal(t, "Anna", p.ManagerName)
			require.Equal(t, "anna@example.com", p.ManagerEmail)
		}
	}
}

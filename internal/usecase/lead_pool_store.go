package usecase

import (
	"sync"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
)

// Transition pairs the state an action was applied to with its result.
type Transition struct {
	Before PoolState
	After  PoolState
}

// LeadPoolStore owns the pool. Every mutation goes through Dispatch, which
// applies one action at a time against the latest snapshot.
type LeadPoolStore struct {
	mu    sync.RWMutex
	state PoolState
}

func NewLeadPoolStore(initial PoolState) *LeadPoolStore {
	if initial.Rule == "" {
		initial.Rule = entity.RuleRoundRobin
	}
	return &LeadPoolStore{state: initial.Clone()}
}

func (s *LeadPoolStore) Dispatch(action Action) Transition {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.state
	s.state = Reduce(before, action)
	return Transition{Before: before.Clone(), After: s.state.Clone()}
}

// Snapshot returns a deep copy of the current state.
func (s *LeadPoolStore) Snapshot() PoolState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *LeadPoolStore) LeadsBySource(source entity.LeadSource) []entity.Lead {
	return s.Snapshot().LeadsBySource(source)
}

func (s *LeadPoolStore) IsAutoDistribution() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAutoDistribution()
}

func (s *LeadPoolStore) Lead(id string) (entity.Lead, bool) {
	return s.Snapshot().FindLead(id)
}

func (s *LeadPoolStore) Manager(id string) (entity.Manager, bool) {
	return s.Snapshot().FindManager(id)
}

func (s *LeadPoolStore) LeadPartner(id string) (entity.LeadPartner, bool) {
	return s.Snapshot().FindLeadPartner(id)
}

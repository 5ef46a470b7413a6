package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
)

func TestPendingIsOrderedByStagingTime(t *testing.T) {
	store := NewLeadPoolStore(PoolState{LeadPartners: []entity.LeadPartner{{ID: "lp1", PartnerID: "p1"}}})
	toggles := NewPermissionToggles(store)

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	toggles.now = func() time.Time { return clock }

	var staged []string
	for _, perm := range []string{entity.PermissionManageManagers, entity.PermissionViewLeads, entity.PermissionTakeLeads} {
		p, err := toggles.Stage("lp1", perm)
		require.NoError(t, err)
		staged = append(staged, p.Permission)
		clock = clock.Add(time.Second)
	}

	for i := 0; i < 5; i++ {
		var got []string
		for _, p := range toggles.Pending() {
			got = append(got, p.Permission)
		}
		assert.Equal(t, staged, got)
	}
}

func TestPendingBreaksTiesByToken(t *testing.T) {
	store := NewLeadPoolStore(PoolState{LeadPartners: []entity.LeadPartner{{ID: "lp1", PartnerID: "p1"}}})
	toggles := NewPermissionToggles(store)
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	toggles.now = func() time.Time { return at }

	for _, perm := range entity.Permissions {
		_, err := toggles.Stage("lp1", perm)
		require.NoError(t, err)
	}

	pending := toggles.Pending()
	require.Len(t, pending, len(entity.Permissions))
	for i := 1; i < len(pending); i++ {
		assert.Less(t, pending[i-1].Token, pending[i].Token)
	}
}

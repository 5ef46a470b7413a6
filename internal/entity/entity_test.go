package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewLead(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	l := NewLead(SourceRent, "", nil, now)
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, StageNew, l.StageID)
	assert.Equal(t, now, l.CreatedAt)
	assert.False(t, l.IsAssigned())

	other := NewLead(SourceRent, StageDeal, StringPtr("A"), now)
	assert.NotEqual(t, l.ID, other.ID)
	assert.True(t, other.AssignedTo("A"))
	assert.False(t, other.AssignedTo("B"))
}

func TestRuleAndQueueValidity(t *testing.T) {
	assert.True(t, RuleByLoad.IsAutomatic())
	assert.False(t, RuleManual.IsAutomatic())
	assert.False(t, DistributionRule("lottery").IsValid())
	assert.True(t, SourceAdCampaigns.IsValid())
	assert.False(t, StageID("won").IsValid())
}

func TestManagerApplyAndClone(t *testing.T) {
	m := Manager{ID: "A", Name: "Anna", SourceTypes: []LeadSource{SourcePrimary}}

	clone := m.Clone()
	clone.SourceTypes[0] = SourceRent
	assert.Equal(t, SourcePrimary, m.SourceTypes[0])

	email := "anna@example.com"
	patched := m.Apply(ManagerPatch{Email: &email})
	assert.Equal(t, "Anna", patched.Name)
	assert.Equal(t, email, patched.Email)
	assert.True(t, patched.Serves(SourcePrimary))
}

func TestLeadPartnerApplyMergesPermissions(t *testing.T) {
	lp := LeadPartner{ID: "lp1", Permissions: map[string]bool{PermissionViewLeads: true}}

	patched := lp.Apply(LeadPartnerPatch{Permissions: map[string]bool{PermissionTakeLeads: true}})

	assert.Equal(t, map[string]bool{PermissionViewLeads: true, PermissionTakeLeads: true}, patched.Permissions)
	assert.Len(t, lp.Permissions, 1)

	empty := LeadPartner{ID: "lp2"}.Apply(LeadPartnerPatch{Permissions: map[string]bool{PermissionManageManagers: false}})
	assert.Contains(t, empty.Permissions, PermissionManageManagers)
}

func TestHierarchyRolePriority(t *testing.T) {
	assert.Less(t, RoleSupremeOwner.Priority(), RoleMasterPartner.Priority())
	assert.Less(t, RoleMasterPartner.Priority(), RolePartner.Priority())
	assert.Less(t, RolePartner.Priority(), HierarchyRole("guest").Priority())
}

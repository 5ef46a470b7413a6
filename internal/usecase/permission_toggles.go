package usecase

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
)

// PendingToggle is a permission change waiting for confirmation.
type PendingToggle struct {
	Token         string    `json:"token"`
	LeadPartnerID string    `json:"lead_partner_id"`
	Permission    string    `json:"permission"`
	Value         bool      `json:"value"`
	StagedAt      time.Time `json:"staged_at"`
}

// PermissionToggles stages permission flips. Nothing reaches the store until
// Confirm; Cancel drops the staged value. Tokens are single use.
type PermissionToggles struct {
	mu      sync.Mutex
	store   *LeadPoolStore
	pending map[string]PendingToggle
	now     func() time.Time
}

func NewPermissionToggles(store *LeadPoolStore) *PermissionToggles {
	return &PermissionToggles{
		store:   store,
		pending: make(map[string]PendingToggle),
		now:     time.Now,
	}
}

// Stage records the inverse of the partner's current value for permission.
func (t *PermissionToggles) Stage(leadPartnerID, permission string) (PendingToggle, error) {
	if !entity.IsKnownPermission(permission) {
		return PendingToggle{}, ValidationErrors{{"permission", fmt.Sprintf("unknown permission %q", permission)}}
	}
	lp, ok := t.store.LeadPartner(leadPartnerID)
	if !ok {
		return PendingToggle{}, notFound(CodeLeadPartnerNotFound, "lead partner", leadPartnerID)
	}

	toggle := PendingToggle{
		Token:         newID(),
		LeadPartnerID: leadPartnerID,
		Permission:    permission,
		Value:         !lp.Permissions[permission],
		StagedAt:      t.now(),
	}

	t.mu.Lock()
	t.pending[toggle.Token] = toggle
	t.mu.Unlock()
	return toggle, nil
}

func (t *PermissionToggles) Confirm(token string) (entity.LeadPartner, error) {
	toggle, err := t.take(token)
	if err != nil {
		return entity.LeadPartner{}, err
	}

	tr := t.store.Dispatch(PatchLeadPartner{
		LeadPartnerID: toggle.LeadPartnerID,
		Patch:         entity.LeadPartnerPatch{Permissions: map[string]bool{toggle.Permission: toggle.Value}},
	})
	lp, ok := tr.After.FindLeadPartner(toggle.LeadPartnerID)
	if !ok {
		return entity.LeadPartner{}, notFound(CodeLeadPartnerNotFound, "lead partner", toggle.LeadPartnerID)
	}
	return lp, nil
}

func (t *PermissionToggles) Cancel(token string) error {
	_, err := t.take(token)
	return err
}

// Pending lists staged toggles, oldest first.
func (t *PermissionToggles) Pending() []PendingToggle {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]PendingToggle, 0, len(t.pending))
	for _, p := range t.pending {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StagedAt.Equal(out[j].StagedAt) {
			return out[i].StagedAt.Before(out[j].StagedAt)
		}
		return out[i].Token < out[j].Token
	})
	return out
}

func (t *PermissionToggles) take(token string) (PendingToggle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	toggle, ok := t.pending[token]
	if !ok {
		return PendingToggle{}, notFound(CodeToggleNotFound, "pending toggle", token)
	}
	delete(t.pending, token)
	return toggle, nil
}

func newID() string {
	return uuid.New().String()
}

package entity

// Permission keys a lead partner can be granted.
const (
	PermissionViewLeads      = "view_leads"
	PermissionTakeLeads      = "take_leads"
	PermissionReassignLeads  = "reassign_leads"
	PermissionManageManagers = "manage_managers"
)

var Permissions = []string{
	PermissionViewLeads,
	PermissionTakeLeads,
	PermissionReassignLeads,
	PermissionManageManagers,
}

func IsKnownPermission(key string) bool {
	for _, p := range Permissions {
		if p == key {
			return true
		}
	}
	return false
}

// LeadPartner is an access grant to the lead pool. It plays no part in routing.
type LeadPartner struct {
	ID          string          `json:"id" yaml:"id"`
	PartnerID   string          `json:"partner_id" yaml:"partner_id"`
	Name        string          `json:"name" yaml:"name"`
	Permissions map[string]bool `json:"permissions" yaml:"permissions"`
}

type LeadPartnerPatch struct {
	Name        *string         `json:"name,omitempty"`
	Permissions map[string]bool `json:"permissions,omitempty"`
}

// Apply merges permission keys instead of replacing the whole map.
func (lp LeadPartner) Apply(p LeadPartnerPatch) LeadPartner {
	lp = lp.Clone()
	if p.Name != nil {
		lp.Name = *p.Name
	}
	for k, v := range p.Permissions {
		if lp.Permissions == nil {
			lp.Permissions = make(map[string]bool, len(p.Permissions))
		}
		lp.Permissions[k] = v
	}
	return lp
}

func (lp LeadPartner) Clone() LeadPartner {
	if lp.Permissions != nil {
		perms := make(map[string]bool, len(lp.Permissions))
		for k, v := range lp.Permissions {
			perms[k] = v
		}
		lp.Permissions = perms
	}
	return lp
}

// Partner is an identity in the partner network roster.
type Partner struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

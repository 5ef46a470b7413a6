package entity

type HierarchyRole string

const (
	RoleSupremeOwner  HierarchyRole = "supreme_owner"
	RoleMasterPartner HierarchyRole = "master_partner"
	RolePartner       HierarchyRole = "partner"
)

// Priority orders roles from the top of the tree down.
func (r HierarchyRole) Priority() int {
	switch r {
	case RoleSupremeOwner:
		return 0
	case RoleMasterPartner:
		return 1
	case RolePartner:
		return 2
	default:
		return 3
	}
}

type CabinetScope string

const (
	ScopeNetwork CabinetScope = "network"
	ScopeMe      CabinetScope = "me"
	ScopePartner CabinetScope = "partner"
)

type OwnerHierarchyNode struct {
	ID       string        `json:"id"`
	Role     HierarchyRole `json:"role"`
	Label    string        `json:"label"`
	PersonID string        `json:"person_id,omitempty"`
	ParentID *string       `json:"parent_id"`
	Children []string      `json:"children"`
}

type OwnerCabinetOption struct {
	ID       string        `json:"id"`
	Scope    CabinetScope  `json:"scope"`
	Role     HierarchyRole `json:"role"`
	Label    string        `json:"label"`
	PersonID string        `json:"person_id,omitempty"`
}

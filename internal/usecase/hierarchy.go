package usecase

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
)

const (
	RootNodeID       = "owner-root"
	NetworkCabinetID = "network"
	MyCabinetID      = "me"

	mastersBesideOwner = 2
)

// NameLookup resolves a person id to a display name.
type NameLookup func(personID string) (string, bool)

// Hierarchy is the three level ownership tree. Nodes are ordered root first,
// then masters, then members, which is also construction order.
type Hierarchy struct {
	RootID string                      `json:"root_id"`
	Nodes  []entity.OwnerHierarchyNode `json:"nodes"`
}

func (h Hierarchy) Node(id string) (entity.OwnerHierarchyNode, bool) {
	for _, n := range h.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return entity.OwnerHierarchyNode{}, false
}

// BuildHierarchy makes the current user and the first two other partners
// masters under a single root, and hands every remaining partner to a master
// in rotation. Duplicate and empty ids in the roster are skipped.
func BuildHierarchy(currentUserID string, partnerIDs []string, names NameLookup) Hierarchy {
	var masters, members []string
	seen := map[string]bool{"": true}
	if currentUserID != "" {
		masters = append(masters, currentUserID)
		seen[currentUserID] = true
	}
	promoted := 0
	for _, id := range partnerIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if promoted < mastersBesideOwner {
			masters = append(masters, id)
			promoted++
			continue
		}
		members = append(members, id)
	}

	root := entity.OwnerHierarchyNode{
		ID:       RootNodeID,
		Role:     entity.RoleSupremeOwner,
		Label:    "Network owner",
		Children: []string{},
	}
	nodes := []entity.OwnerHierarchyNode{root}

	masterNodeIDs := make([]string, len(masters))
	for i, personID := range masters {
		parent := RootNodeID
		masterNodeIDs[i] = "master-" + personID
		nodes = append(nodes, entity.OwnerHierarchyNode{
			ID:       masterNodeIDs[i],
			Role:     entity.RoleMasterPartner,
			Label:    labelFor(names, personID, "Master", i+1),
			PersonID: personID,
			ParentID: &parent,
			Children: []string{},
		})
		nodes[0].Children = append(nodes[0].Children, masterNodeIDs[i])
	}

	for i, personID := range members {
		if len(masters) == 0 {
			break
		}
		slot := RotationIndex(i, len(masters))
		parent := masterNodeIDs[slot]
		nodeID := "partner-" + personID
		nodes = append(nodes, entity.OwnerHierarchyNode{
			ID:       nodeID,
			Role:     entity.RolePartner,
			Label:    labelFor(names, personID, "Partner", i+1),
			PersonID: personID,
			ParentID: &parent,
			Children: []string{},
		})
		// masters occupy nodes[1:len(masters)+1]
		nodes[slot+1].Children = append(nodes[slot+1].Children, nodeID)
	}

	return Hierarchy{RootID: RootNodeID, Nodes: nodes}
}

func labelFor(names NameLookup, personID, kind string, ordinal int) string {
	if names != nil {
		if name, ok := names(personID); ok && name != "" {
			return name
		}
	}
	return fmt.Sprintf("%s %d", kind, ordinal)
}

// BuildCabinetOptions lists the network and personal cabinets first, then every
// non-root node except the viewer's own, ordered by role and then by label
// using case-insensitive collation for the given locale.
func BuildCabinetOptions(h Hierarchy, currentUserID string, locale language.Tag) []entity.OwnerCabinetOption {
	options := []entity.OwnerCabinetOption{
		{ID: NetworkCabinetID, Scope: entity.ScopeNetwork, Role: entity.RoleSupremeOwner, Label: "Whole network"},
		{ID: MyCabinetID, Scope: entity.ScopeMe, Role: entity.RoleMasterPartner, Label: "My cabinet", PersonID: currentUserID},
	}

	var rest []entity.OwnerCabinetOption
	for _, n := range h.Nodes {
		if n.ID == h.RootID || n.PersonID == currentUserID {
			continue
		}
		rest = append(rest, entity.OwnerCabinetOption{
			ID:       n.ID,
			Scope:    entity.ScopePartner,
			Role:     n.Role,
			Label:    n.Label,
			PersonID: n.PersonID,
		})
	}

	c := collate.New(locale, collate.IgnoreCase)
	sort.SliceStable(rest, func(i, j int) bool {
		pi, pj := rest[i].Role.Priority(), rest[j].Role.Priority()
		if pi != pj {
			return pi < pj
		}
		return c.CompareString(rest[i].Label, rest[j].Label) < 0
	})

	return append(options, rest...)
}

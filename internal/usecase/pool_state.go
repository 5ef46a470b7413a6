package usecase

import "github.com/Budorazhka/LastDance-sub001/internal/entity"

// PoolState is an immutable value. Reduce always builds a new one and never
// writes through slices it received.
type PoolState struct {
	Leads               []entity.Lead           `json:"leads"`
	Managers            []entity.Manager        `json:"managers"`
	Rule                entity.DistributionRule `json:"rule"`
	ManualDistributorID *string                 `json:"manual_distributor_id"`
	LeadPartners        []entity.LeadPartner    `json:"lead_partners"`
}

// RoutingMode tells how a new lead got (or did not get) its manager.
type RoutingMode string

const (
	RoutingExplicit RoutingMode = "explicit"
	RoutingAuto     RoutingMode = "auto"
	RoutingManual   RoutingMode = "manual"
)

// addLeadRouting is evaluated top to bottom; the first matching row wins.
var addLeadRouting = []struct {
	mode    RoutingMode
	matches func(s PoolState, l entity.Lead) bool
}{
	{RoutingExplicit, func(_ PoolState, l entity.Lead) bool { return l.ManagerID != nil }},
	{RoutingAuto, func(s PoolState, _ entity.Lead) bool { return s.ManualDistributorID == nil && s.Rule.IsAutomatic() }},
	{RoutingManual, func(PoolState, entity.Lead) bool { return true }},
}

// RoutingFor returns the mode the reducer will use for lead against state.
func RoutingFor(s PoolState, l entity.Lead) RoutingMode {
	for _, row := range addLeadRouting {
		if row.matches(s, l) {
			return row.mode
		}
	}
	return RoutingManual
}

// RouteLead applies the add-lead precedence and returns the lead as it will be stored.
func RouteLead(s PoolState, l entity.Lead) (entity.Lead, RoutingMode) {
	mode := RoutingFor(s, l)
	if mode == RoutingAuto {
		if id, ok := ResolveManager(s.Leads, s.Managers, l.Source, s.Rule); ok {
			l.ManagerID = &id
		} else {
			l.ManagerID = nil
		}
	}
	return l, mode
}

// IsAutoDistribution is true when new leads are routed without a human.
func (s PoolState) IsAutoDistribution() bool {
	return s.Rule != entity.RuleManual && s.ManualDistributorID == nil
}

func (s PoolState) LeadsBySource(source entity.LeadSource) []entity.Lead {
	var out []entity.Lead
	for _, l := range s.Leads {
		if l.Source == source {
			out = append(out, l)
		}
	}
	return out
}

func (s PoolState) FindLead(id string) (entity.Lead, bool) {
	for _, l := range s.Leads {
		if l.ID == id {
			return l, true
		}
	}
	return entity.Lead{}, false
}

func (s PoolState) FindManager(id string) (entity.Manager, bool) {
	for _, m := range s.Managers {
		if m.ID == id {
			return m, true
		}
	}
	return entity.Manager{}, false
}

func (s PoolState) FindLeadPartner(id string) (entity.LeadPartner, bool) {
	for _, lp := range s.LeadPartners {
		if lp.ID == id {
			return lp, true
		}
	}
	return entity.LeadPartner{}, false
}

// Clone returns a deep copy safe to hand to callers outside the store.
func (s PoolState) Clone() PoolState {
	out := PoolState{Rule: s.Rule}
	if s.ManualDistributorID != nil {
		id := *s.ManualDistributorID
		out.ManualDistributorID = &id
	}
	out.Leads = make([]entity.Lead, len(s.Leads))
	for i, l := range s.Leads {
		if l.ManagerID != nil {
			id := *l.ManagerID
			l.ManagerID = &id
		}
		out.Leads[i] = l
	}
	out.Managers = make([]entity.Manager, len(s.Managers))
	for i, m := range s.Managers {
		out.Managers[i] = m.Clone()
	}
	out.LeadPartners = make([]entity.LeadPartner, len(s.LeadPartners))
	for i, lp := range s.LeadPartners {
		out.LeadPartners[i] = lp.Clone()
	}
	return out
}

// Reduce applies one action. Unknown ids leave the state untouched.
func Reduce(s PoolState, action Action) PoolState {
	switch a := action.(type) {
	case AddLead:
		lead, _ := RouteLead(s, a.Lead)
		leads := make([]entity.Lead, 0, len(s.Leads)+1)
		leads = append(leads, lead)
		s.Leads = append(leads, s.Leads...)
		return s

	case AssignLead:
		return updateLead(s, a.LeadID, func(l entity.Lead) (entity.Lead, bool) {
			if l.AssignedTo(a.ManagerID) {
				return l, false
			}
			id := a.ManagerID
			l.ManagerID = &id
			return l, true
		})

	case UnassignLead:
		return updateLead(s, a.LeadID, func(l entity.Lead) (entity.Lead, bool) {
			if l.ManagerID == nil {
				return l, false
			}
			l.ManagerID = nil
			return l, true
		})

	case SetStage:
		return updateLead(s, a.LeadID, func(l entity.Lead) (entity.Lead, bool) {
			if l.StageID == a.StageID {
				return l, false
			}
			l.StageID = a.StageID
			return l, true
		})

	case SetRule:
		s.Rule = a.Rule
		return s

	case SetManualDistributor:
		if a.ManagerID == nil {
			s.ManualDistributorID = nil
			return s
		}
		if _, ok := s.FindManager(*a.ManagerID); !ok {
			return s
		}
		id := *a.ManagerID
		s.ManualDistributorID = &id
		return s

	case AddManager:
		if _, exists := s.FindManager(a.Manager.ID); exists {
			return s
		}
		managers := make([]entity.Manager, 0, len(s.Managers)+1)
		managers = append(managers, s.Managers...)
		s.Managers = append(managers, a.Manager.Clone())
		return s

	case RemoveManager:
		managers := make([]entity.Manager, 0, len(s.Managers))
		for _, m := range s.Managers {
			if m.ID != a.ManagerID {
				managers = append(managers, m)
			}
		}
		s.Managers = managers
		if s.ManualDistributorID != nil && *s.ManualDistributorID == a.ManagerID {
			s.ManualDistributorID = nil
		}
		return s

	case PatchManager:
		managers := make([]entity.Manager, len(s.Managers))
		for i, m := range s.Managers {
			if m.ID == a.ManagerID {
				m = m.Apply(a.Patch)
			}
			managers[i] = m
		}
		s.Managers = managers
		return s

	case AddLeadPartner:
		if _, exists := s.FindLeadPartner(a.LeadPartner.ID); exists {
			return s
		}
		partners := make([]entity.LeadPartner, 0, len(s.LeadPartners)+1)
		partners = append(partners, s.LeadPartners...)
		s.LeadPartners = append(partners, a.LeadPartner.Clone())
		return s

	case RemoveLeadPartner:
		partners := make([]entity.LeadPartner, 0, len(s.LeadPartners))
		for _, lp := range s.LeadPartners {
			if lp.ID != a.LeadPartnerID {
				partners = append(partners, lp)
			}
		}
		s.LeadPartners = partners
		return s

	case PatchLeadPartner:
		partners := make([]entity.LeadPartner, len(s.LeadPartners))
		for i, lp := range s.LeadPartners {
			if lp.ID == a.LeadPartnerID {
				lp = lp.Apply(a.Patch)
			}
			partners[i] = lp
		}
		s.LeadPartners = partners
		return s

	default:
		return s
	}
}

func updateLead(s PoolState, leadID string, fn func(entity.Lead) (entity.Lead, bool)) PoolState {
	for i, l := range s.Leads {
		if l.ID != leadID {
			continue
		}
		updated, changed := fn(l)
		if !changed {
			return s
		}
		leads := make([]entity.Lead, len(s.Leads))
		copy(leads, s.Leads)
		leads[i] = updated
		s.Leads = leads
		return s
	}
	return s
}

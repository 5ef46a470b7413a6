package entity

// DistributionRule is the network-wide automatic assignment policy.
type DistributionRule string

const (
	RuleRoundRobin DistributionRule = "round_robin"
	RuleByLoad     DistributionRule = "by_load"
	RuleManual     DistributionRule = "manual"
)

var DistributionRules = []DistributionRule{RuleRoundRobin, RuleByLoad, RuleManual}

func (r DistributionRule) IsValid() bool {
	for _, known := range DistributionRules {
		if r == known {
			return true
		}
	}
	return false
}

// IsAutomatic is true for the rules that compute an assignee.
func (r DistributionRule) IsAutomatic() bool {
	return r == RuleRoundRobin || r == RuleByLoad
}

type Manager struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email,omitempty"`
	SourceTypes []LeadSource `json:"source_types"`
}

// Serves reports whether the manager may receive leads from the queue.
func (m Manager) Serves(source LeadSource) bool {
	for _, s := range m.SourceTypes {
		if s == source {
			return true
		}
	}
	return false
}

// ManagerPatch carries the fields to overwrite; nil fields stay untouched.
type ManagerPatch struct {
	Name        *string      `json:"name,omitempty"`
	Email       *string      `json:"email,omitempty"`
	SourceTypes []LeadSource `json:"source_types,omitempty"`
}

func (m Manager) Apply(p ManagerPatch) Manager {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.SourceTypes != nil {
		m.SourceTypes = append([]LeadSource(nil), p.SourceTypes...)
	}
	return m
}

func (m Manager) Clone() Manager {
	m.SourceTypes = append([]LeadSource(nil), m.SourceTypes...)
	return m
}

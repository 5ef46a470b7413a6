package usecase

import (
	"sort"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
)

// ResolveManager picks the manager that should receive a new lead from source
// under an automatic rule. It returns false when nobody is eligible or the rule
// does not compute assignees; callers must not invoke it in manual mode.
func ResolveManager(pool []entity.Lead, managers []entity.Manager, source entity.LeadSource, rule entity.DistributionRule) (string, bool) {
	eligible := eligibleManagers(managers, source)
	if len(eligible) == 0 {
		return "", false
	}

	switch rule {
	case entity.RuleRoundRobin:
		return roundRobin(pool, eligible, source), true
	case entity.RuleByLoad:
		return leastLoaded(pool, eligible, source), true
	default:
		return "", false
	}
}

func eligibleManagers(managers []entity.Manager, source entity.LeadSource) []entity.Manager {
	var out []entity.Manager
	for _, m := range managers {
		if m.Serves(source) {
			out = append(out, m)
		}
	}
	return out
}

// roundRobin derives the rotation position from how many leads the queue has
// already seen, so no cursor needs to be stored.
func roundRobin(pool []entity.Lead, eligible []entity.Manager, source entity.LeadSource) string {
	ids := make([]string, len(eligible))
	for i, m := range eligible {
		ids[i] = m.ID
	}
	sort.Strings(ids)

	seen := 0
	for _, l := range pool {
		if l.Source == source {
			seen++
		}
	}
	return ids[RotationIndex(seen, len(ids))]
}

// leastLoaded counts assigned leads per manager within the queue only. Ties go
// to the manager listed first.
func leastLoaded(pool []entity.Lead, eligible []entity.Manager, source entity.LeadSource) string {
	load := make(map[string]int, len(eligible))
	for _, m := range eligible {
		load[m.ID] = 0
	}
	for _, l := range pool {
		if l.Source != source || l.ManagerID == nil {
			continue
		}
		if _, ok := load[*l.ManagerID]; ok {
			load[*l.ManagerID]++
		}
	}

	best := eligible[0].ID
	for _, m := range eligible[1:] {
		if load[m.ID] < load[best] {
			best = m.ID
		}
	}
	return best
}

// RotationIndex is the shared round-robin law: the k-th item goes to slot k mod n.
func RotationIndex(k, n int) int {
	if n <= 0 {
		return 0
	}
	return k % n
}

// Package roster loads the seed roster the console starts with: managers that
// receive leads, the partner network and lead-partner access grants.
package roster

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
)

type ManagerEntry struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Email       string   `yaml:"email,omitempty"`
	SourceTypes []string `yaml:"source_types"`
}

type Roster struct {
	Managers     []ManagerEntry       `yaml:"managers"`
	Partners     []entity.Partner     `yaml:"partners"`
	LeadPartners []entity.LeadPartner `yaml:"lead_partners"`
}

// LoadFile reads a roster from path. A missing path yields an empty roster.
func LoadFile(path string) (Roster, error) {
	if path == "" {
		return Roster{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, fmt.Errorf("read roster %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Roster{}, fmt.Errorf("parse roster: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Roster{}, err
	}
	return r, nil
}

func (r Roster) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(r.Managers))
	for i, m := range r.Managers {
		if m.ID == "" {
			errs = append(errs, fmt.Errorf("managers[%d]: id is required", i))
			continue
		}
		if seen[m.ID] {
			errs = append(errs, fmt.Errorf("managers[%d]: duplicate id %q", i, m.ID))
		}
		seen[m.ID] = true
		if len(m.SourceTypes) == 0 {
			errs = append(errs, fmt.Errorf("managers[%d]: source_types must not be empty", i))
		}
		for _, s := range m.SourceTypes {
			if !entity.LeadSource(s).IsValid() {
				errs = append(errs, fmt.Errorf("managers[%d]: unknown queue %q", i, s))
			}
		}
	}

	for i, p := range r.Partners {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("partners[%d]: id is required", i))
		}
	}

	seenGrants := make(map[string]bool, len(r.LeadPartners))
	for i, lp := range r.LeadPartners {
		if lp.ID == "" {
			errs = append(errs, fmt.Errorf("lead_partners[%d]: id is required", i))
		} else if seenGrants[lp.ID] {
			errs = append(errs, fmt.Errorf("lead_partners[%d]: duplicate id %q", i, lp.ID))
		}
		seenGrants[lp.ID] = true
		if strings.TrimSpace(lp.PartnerID) == "" {
			errs = append(errs, fmt.Errorf("lead_partners[%d]: partner_id is required", i))
		}
		for key := range lp.Permissions {
			if !entity.IsKnownPermission(key) {
				errs = append(errs, fmt.Errorf("lead_partners[%d]: unknown permission %q", i, key))
			}
		}
	}

	return errors.Join(errs...)
}

func (r Roster) ManagerEntities() []entity.Manager {
	out := make([]entity.Manager, len(r.Managers))
	for i, m := range r.Managers {
		sources := make([]entity.LeadSource, len(m.SourceTypes))
		for j, s := range m.SourceTypes {
			sources[j] = entity.LeadSource(s)
		}
		out[i] = entity.Manager{ID: m.ID, Name: m.Name, Email: m.Email, SourceTypes: sources}
	}
	return out
}

// StaticDirectory serves the roster's partner list when no database is configured.
type StaticDirectory struct {
	Partners []entity.Partner
}

func (d StaticDirectory) ListPartners(context.Context) ([]entity.Partner, error) {
	out := make([]entity.Partner, len(d.Partners))
	copy(out, d.Partners)
	return out, nil
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// LeadSource is the queue a lead arrives through. It never changes after creation.
type LeadSource string

const (
	SourcePrimary     LeadSource = "primary"
	SourceSecondary   LeadSource = "secondary"
	SourceRent        LeadSource = "rent"
	SourceAdCampaigns LeadSource = "ad_campaigns"
)

var LeadSources = []LeadSource{SourcePrimary, SourceSecondary, SourceRent, SourceAdCampaigns}

func (s LeadSource) IsValid() bool {
	for _, known := range LeadSources {
		if s == known {
			return true
		}
	}
	return false
}

// StageID points into the sales funnel. Order is informational only.
type StageID string

const (
	StageNew       StageID = "new"
	StagePresented StageID = "presented"
	StageShowing   StageID = "showing"
	StageDeal      StageID = "deal"
)

var Stages = []StageID{StageNew, StagePresented, StageShowing, StageDeal}

func (s StageID) IsValid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

type Lead struct {
	ID        string     `json:"id"`
	Source    LeadSource `json:"source"`
	StageID   StageID    `json:"stage_id"`
	ManagerID *string    `json:"manager_id"` // nil = unassigned
	Name      string     `json:"name,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewLead fills the id, stage and creation time when the caller left them empty.
func NewLead(source LeadSource, stage StageID, managerID *string, now time.Time) Lead {
	if stage == "" {
		stage = StageNew
	}
	return Lead{
		ID:        uuid.New().String(),
		Source:    source,
		StageID:   stage,
		ManagerID: managerID,
		CreatedAt: now,
	}
}

func (l Lead) IsAssigned() bool {
	return l.ManagerID != nil
}

// AssignedTo reports whether the lead belongs to the given manager.
func (l Lead) AssignedTo(managerID string) bool {
	return l.ManagerID != nil && *l.ManagerID == managerID
}

// StringPtr is a small helper for optional ids.
func StringPtr(s string) *string {
	return &s
}

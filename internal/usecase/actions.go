package usecase

import "github.com/Budorazhka/LastDance-sub001/internal/entity"

// Action is one mutation of the lead pool. The set of variants is closed;
// Reduce handles every one of them.
type Action interface {
	isAction()
}

type AddLead struct {
	Lead entity.Lead
}

type AssignLead struct {
	LeadID    string
	ManagerID string
}

type UnassignLead struct {
	LeadID string
}

type SetStage struct {
	LeadID  string
	StageID entity.StageID
}

type SetRule struct {
	Rule entity.DistributionRule
}

// SetManualDistributor sets or, with a nil id, clears the manual distributor.
type SetManualDistributor struct {
	ManagerID *string
}

type AddManager struct {
	Manager entity.Manager
}

type RemoveManager struct {
	ManagerID string
}

type PatchManager struct {
	ManagerID string
	Patch     entity.ManagerPatch
}

type AddLeadPartner struct {
	LeadPartner entity.LeadPartner
}

type RemoveLeadPartner struct {
	LeadPartnerID string
}

type PatchLeadPartner struct {
	LeadPartnerID string
	Patch         entity.LeadPartnerPatch
}

func (AddLead) isAction()              {}
func (AssignLead) isAction()           {}
func (UnassignLead) isAction()         {}
func (SetStage) isAction()             {}
func (SetRule) isAction()              {}
func (SetManualDistributor) isAction() {}
func (AddManager) isAction()           {}
func (RemoveManager) isAction()        {}
func (PatchManager) isAction()         {}
func (AddLeadPartner) isAction()       {}
func (RemoveLeadPartner) isAction()    {}
func (PatchLeadPartner) isAction()     {}

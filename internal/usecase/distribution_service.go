package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
	"github.com/Budorazhka/LastDance-sub001/internal/infra/queue"
)

// DistributionService checks references at the boundary, dispatches to the
// store and announces assignments. The store itself never fails.
type DistributionService struct {
	Store     *LeadPoolStore
	Publisher AssignmentPublisher
	Observer  RoutingObserver
	Logger    *slog.Logger
	Now       func() time.Time
}

func NewDistributionService(store *LeadPoolStore, publisher AssignmentPublisher, observer RoutingObserver, logger *slog.Logger) *DistributionService {
	if observer == nil {
		observer = noopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DistributionService{
		Store:     store,
		Publisher: publisher,
		Observer:  observer,
		Logger:    logger,
		Now:       time.Now,
	}
}

func (s *DistributionService) AddLead(ctx context.Context, input AddLeadInput) (*AddLeadOutput, error) {
	if errs := ValidateAddLeadInput(input); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	if input.ManagerID != nil {
		if _, ok := s.Store.Manager(*input.ManagerID); !ok {
			return nil, notFound(CodeManagerNotFound, "manager", *input.ManagerID)
		}
	}

	lead := entity.NewLead(entity.LeadSource(input.Source), entity.StageID(input.StageID), input.ManagerID, s.Now())
	lead.Name = strings.TrimSpace(input.Name)
	lead.Phone = input.Phone
	lead.Email = input.Email

	t := s.Store.Dispatch(AddLead{Lead: lead})
	mode := RoutingFor(t.Before, lead)
	stored, _ := t.After.FindLead(lead.ID)

	s.Observer.LeadRouted(string(stored.Source), mode, stored.IsAssigned())
	s.Logger.Info("lead added",
		"lead_id", stored.ID,
		"source", stored.Source,
		"routing", mode,
		"manager_id", derefOr(stored.ManagerID, ""),
	)

	if stored.IsAssigned() {
		s.announce(ctx, t.After, stored, string(mode))
	}

	return &AddLeadOutput{Lead: stored, Routing: mode}, nil
}

func (s *DistributionService) AssignLead(ctx context.Context, leadID string, input AssignLeadInput) (entity.Lead, error) {
	if _, ok := s.Store.Lead(leadID); !ok {
		return entity.Lead{}, notFound(CodeLeadNotFound, "lead", leadID)
	}
	if _, ok := s.Store.Manager(input.ManagerID); !ok {
		return entity.Lead{}, notFound(CodeManagerNotFound, "manager", input.ManagerID)
	}

	t := s.Store.Dispatch(AssignLead{LeadID: leadID, ManagerID: input.ManagerID})
	before, _ := t.Before.FindLead(leadID)
	after, _ := t.After.FindLead(leadID)

	if !before.AssignedTo(input.ManagerID) {
		s.Observer.AssignmentChanged("assign")
		s.Logger.Info("lead reassigned", "lead_id", leadID, "from", derefOr(before.ManagerID, ""), "to", input.ManagerID)
		if _, ok := t.After.FindManager(input.ManagerID); !ok {
			// removed between the lookup above and the dispatch
			s.Logger.Warn("lead assigned to a manager no longer on the roster", "lead_id", leadID, "manager_id", input.ManagerID)
			return after, nil
		}
		s.announce(ctx, t.After, after, string(RoutingManual))
	}
	return after, nil
}

func (s *DistributionService) UnassignLead(leadID string) (entity.Lead, error) {
	if _, ok := s.Store.Lead(leadID); !ok {
		return entity.Lead{}, notFound(CodeLeadNotFound, "lead", leadID)
	}

	t := s.Store.Dispatch(UnassignLead{LeadID: leadID})
	before, _ := t.Before.FindLead(leadID)
	after, _ := t.After.FindLead(leadID)

	if before.IsAssigned() {
		s.Observer.AssignmentChanged("unassign")
		s.Logger.Info("lead unassigned", "lead_id", leadID, "from", *before.ManagerID)
	}
	return after, nil
}

func (s *DistributionService) SetStage(leadID string, input SetStageInput) (entity.Lead, error) {
	if errs := ValidateStage(input.StageID); len(errs) > 0 {
		return entity.Lead{}, ValidationErrors(errs)
	}
	if _, ok := s.Store.Lead(leadID); !ok {
		return entity.Lead{}, notFound(CodeLeadNotFound, "lead", leadID)
	}

	t := s.Store.Dispatch(SetStage{LeadID: leadID, StageID: entity.StageID(input.StageID)})
	after, _ := t.After.FindLead(leadID)
	return after, nil
}

func (s *DistributionService) Distribution() DistributionOutput {
	return distributionOf(s.Store.Snapshot())
}

func (s *DistributionService) SetRule(input SetRuleInput) (DistributionOutput, error) {
	if errs := ValidateRule(input.Rule); len(errs) > 0 {
		return DistributionOutput{}, ValidationErrors(errs)
	}
	t := s.Store.Dispatch(SetRule{Rule: entity.DistributionRule(input.Rule)})
	s.Logger.Info("distribution rule changed", "from", t.Before.Rule, "to", t.After.Rule)
	return distributionOf(t.After), nil
}

func (s *DistributionService) SetManualDistributor(input SetManualDistributorInput) (DistributionOutput, error) {
	if input.ManagerID != nil {
		if _, ok := s.Store.Manager(*input.ManagerID); !ok {
			return DistributionOutput{}, notFound(CodeManagerNotFound, "manager", *input.ManagerID)
		}
	}
	t := s.Store.Dispatch(SetManualDistributor{ManagerID: input.ManagerID})
	s.Logger.Info("manual distributor changed", "manager_id", derefOr(t.After.ManualDistributorID, ""))
	return distributionOf(t.After), nil
}

func (s *DistributionService) AddManager(input CreateManagerInput) (entity.Manager, error) {
	if errs := ValidateCreateManagerInput(input); len(errs) > 0 {
		return entity.Manager{}, ValidationErrors(errs)
	}
	if _, exists := s.Store.Manager(input.ID); exists {
		return entity.Manager{}, &DomainError{Code: CodeManagerExists, Message: "manager already exists: " + input.ID}
	}

	m := entity.Manager{
		ID:          input.ID,
		Name:        strings.TrimSpace(input.Name),
		Email:       input.Email,
		SourceTypes: toSources(input.SourceTypes),
	}
	t := s.Store.Dispatch(AddManager{Manager: m})
	added, _ := t.After.FindManager(m.ID)
	return added, nil
}

func (s *DistributionService) RemoveManager(managerID string) error {
	if _, ok := s.Store.Manager(managerID); !ok {
		return notFound(CodeManagerNotFound, "manager", managerID)
	}
	t := s.Store.Dispatch(RemoveManager{ManagerID: managerID})
	if t.Before.ManualDistributorID != nil && t.After.ManualDistributorID == nil {
		s.Logger.Warn("manual distributor removed, cleared", "manager_id", managerID)
	}
	return nil
}

func (s *DistributionService) PatchManager(managerID string, input PatchManagerInput) (entity.Manager, error) {
	if errs := ValidatePatchManagerInput(input); len(errs) > 0 {
		return entity.Manager{}, ValidationErrors(errs)
	}
	if _, ok := s.Store.Manager(managerID); !ok {
		return entity.Manager{}, notFound(CodeManagerNotFound, "manager", managerID)
	}
	t := s.Store.Dispatch(PatchManager{ManagerID: managerID, Patch: entity.ManagerPatch{
		Name:        input.Name,
		Email:       input.Email,
		SourceTypes: toSources(input.SourceTypes),
	}})
	patched, _ := t.After.FindManager(managerID)
	return patched, nil
}

func (s *DistributionService) AddLeadPartner(input CreateLeadPartnerInput) (entity.LeadPartner, error) {
	if errs := ValidateCreateLeadPartnerInput(input); len(errs) > 0 {
		return entity.LeadPartner{}, ValidationErrors(errs)
	}
	lp := entity.LeadPartner{
		ID:          input.ID,
		PartnerID:   input.PartnerID,
		Name:        strings.TrimSpace(input.Name),
		Permissions: input.Permissions,
	}
	if lp.ID == "" {
		lp.ID = newID()
	}
	if lp.Permissions == nil {
		lp.Permissions = map[string]bool{}
	}
	t := s.Store.Dispatch(AddLeadPartner{LeadPartner: lp})
	added, _ := t.After.FindLeadPartner(lp.ID)
	return added, nil
}

func (s *DistributionService) RemoveLeadPartner(id string) error {
	if _, ok := s.Store.LeadPartner(id); !ok {
		return notFound(CodeLeadPartnerNotFound, "lead partner", id)
	}
	s.Store.Dispatch(RemoveLeadPartner{LeadPartnerID: id})
	return nil
}

func (s *DistributionService) PatchLeadPartner(id string, input PatchLeadPartnerInput) (entity.LeadPartner, error) {
	if errs := ValidatePatchLeadPartnerInput(input); len(errs) > 0 {
		return entity.LeadPartner{}, ValidationErrors(errs)
	}
	if _, ok := s.Store.LeadPartner(id); !ok {
		return entity.LeadPartner{}, notFound(CodeLeadPartnerNotFound, "lead partner", id)
	}
	t := s.Store.Dispatch(PatchLeadPartner{LeadPartnerID: id, Patch: entity.LeadPartnerPatch{
		Name:        input.Name,
		Permissions: input.Permissions,
	}})
	patched, _ := t.After.FindLeadPartner(id)
	return patched, nil
}

// announce is fire-and-forget: a failed publish never undoes the assignment.
func (s *DistributionService) announce(ctx context.Context, state PoolState, lead entity.Lead, reason string) {
	if s.Publisher == nil || lead.ManagerID == nil {
		return
	}
	manager, ok := state.FindManager(*lead.ManagerID)
	if !ok {
		return
	}

	payload := queue.LeadAssignedPayload{
		LeadID:       lead.ID,
		Source:       string(lead.Source),
		StageID:      string(lead.StageID),
		ManagerID:    *lead.ManagerID,
		ManagerName:  manager.Name,
		ManagerEmail: manager.Email,
		Reason:       reason,
		LeadName:     lead.Name,
		LeadPhone:    lead.Phone,
		OccurredAt:   s.Now(),
	}
	if err := s.Publisher.PublishLeadAssigned(ctx, payload); err != nil {
		s.Observer.NotificationFailed("rabbitmq")
		s.Logger.Error("lead assigned but event not published", "lead_id", lead.ID, "error", err)
	}
}

func distributionOf(state PoolState) DistributionOutput {
	return DistributionOutput{
		Rule:                state.Rule,
		ManualDistributorID: state.ManualDistributorID,
		AutoDistribution:    state.IsAutoDistribution(),
	}
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

package usecase

import "github.com/Budorazhka/LastDance-sub001/internal/entity"

type AddLeadInput struct {
	Source    string  `json:"source"`
	StageID   string  `json:"stage_id"`
	ManagerID *string `json:"manager_id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
}

type AddLeadOutput struct {
	Lead    entity.Lead `json:"lead"`
	Routing RoutingMode `json:"routing"`
}

type AssignLeadInput struct {
	ManagerID string `json:"manager_id"`
}

type SetStageInput struct {
	StageID string `json:"stage_id"`
}

type SetRuleInput struct {
	Rule string `json:"rule"`
}

type SetManualDistributorInput struct {
	ManagerID *string `json:"manager_id"`
}

type DistributionOutput struct {
	Rule                entity.DistributionRule `json:"rule"`
	ManualDistributorID *string                 `json:"manual_distributor_id"`
	AutoDistribution    bool                    `json:"auto_distribution"`
}

type CreateManagerInput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	SourceTypes []string `json:"source_types"`
}

type PatchManagerInput struct {
	Name        *string  `json:"name"`
	Email       *string  `json:"email"`
	SourceTypes []string `json:"source_types"`
}

type CreateLeadPartnerInput struct {
	ID          string          `json:"id"`
	PartnerID   string          `json:"partner_id"`
	Name        string          `json:"name"`
	Permissions map[string]bool `json:"permissions"`
}

type PatchLeadPartnerInput struct {
	Name        *string         `json:"name"`
	Permissions map[string]bool `json:"permissions"`
}

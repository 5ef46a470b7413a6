package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors lets a validation result travel as a single error.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

var nonDigits = regexp.MustCompile(`\D`)

func ValidateAddLeadInput(input AddLeadInput) []ValidationError {
	var errors []ValidationError

	if input.Source == "" {
		errors = append(errors, ValidationError{"source", "is required"})
	} else if !entity.LeadSource(input.Source).IsValid() {
		errors = append(errors, ValidationError{"source", "must be one of primary, secondary, rent, ad_campaigns"})
	}

	if input.StageID != "" && !entity.StageID(input.StageID).IsValid() {
		errors = append(errors, ValidationError{"stage_id", "must be one of new, presented, showing, deal"})
	}

	if input.ManagerID != nil && strings.TrimSpace(*input.ManagerID) == "" {
		errors = append(errors, ValidationError{"manager_id", "must not be blank"})
	}

	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	return errors
}

func ValidateStage(stage string) []ValidationError {
	// any stage id from the funnel is accepted regardless of the current one
	if !entity.StageID(stage).IsValid() {
		return []ValidationError{{"stage_id", "must be one of new, presented, showing, deal"}}
	}
	return nil
}

func ValidateRule(rule string) []ValidationError {
	if !entity.DistributionRule(rule).IsValid() {
		return []ValidationError{{"rule", "must be one of round_robin, by_load, manual"}}
	}
	return nil
}

func ValidateCreateManagerInput(input CreateManagerInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.ID) == "" {
		errors = append(errors, ValidationError{"id", "is required"})
	}
	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}
	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}
	errors = append(errors, validateSourceTypes(input.SourceTypes)...)

	return errors
}

func ValidatePatchManagerInput(input PatchManagerInput) []ValidationError {
	var errors []ValidationError

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		errors = append(errors, ValidationError{"name", "must not be blank"})
	}
	if input.Email != nil && *input.Email != "" {
		if _, err := mail.ParseAddress(*input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}
	if input.SourceTypes != nil {
		errors = append(errors, validateSourceTypes(input.SourceTypes)...)
	}

	return errors
}

func validateSourceTypes(sources []string) []ValidationError {
	if len(sources) == 0 {
		return []ValidationError{{"source_types", "must contain at least one queue"}}
	}
	for _, s := range sources {
		if !entity.LeadSource(s).IsValid() {
			return []ValidationError{{"source_types", fmt.Sprintf("unknown queue %q", s)}}
		}
	}
	return nil
}

func ValidateCreateLeadPartnerInput(input CreateLeadPartnerInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.PartnerID) == "" {
		errors = append(errors, ValidationError{"partner_id", "is required"})
	}
	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}
	errors = append(errors, validatePermissions(input.Permissions)...)

	return errors
}

func ValidatePatchLeadPartnerInput(input PatchLeadPartnerInput) []ValidationError {
	var errors []ValidationError

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		errors = append(errors, ValidationError{"name", "must not be blank"})
	}
	errors = append(errors, validatePermissions(input.Permissions)...)

	return errors
}

func validatePermissions(perms map[string]bool) []ValidationError {
	for key := range perms {
		if !entity.IsKnownPermission(key) {
			return []ValidationError{{"permissions", fmt.Sprintf("unknown permission %q", key)}}
		}
	}
	return nil
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 15
}

func toSources(raw []string) []entity.LeadSource {
	if raw == nil {
		return nil
	}
	out := make([]entity.LeadSource, len(raw))
	for i, s := range raw {
		out[i] = entity.LeadSource(s)
	}
	return out
}

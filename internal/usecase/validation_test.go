package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
	"github.com/Budorazhka/LastDance-sub001/internal/usecase"
)

func fields(errs []usecase.ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func TestValidateAddLeadInput(t *testing.T) {
	tests := []struct {
		name   string
		input  usecase.AddLeadInput
		fields []string
	}{
		{"minimal", usecase.AddLeadInput{Source: "rent"}, []string{}},
		{"full", usecase.AddLeadInput{
			Source: "primary", StageID: "showing", ManagerID: entity.StringPtr("A"),
			Name: "Ivan", Phone: "+7 (912) 345-67-89", Email: "ivan@example.com",
		}, []string{}},
		{"missing source", usecase.AddLeadInput{}, []string{"source"}},
		{"unknown stage", usecase.AddLeadInput{Source: "rent", StageID: "won"}, []string{"stage_id"}},
		{"blank manager", usecase.AddLeadInput{Source: "rent", ManagerID: entity.StringPtr(" ")}, []string{"manager_id"}},
		{"bad contacts", usecase.AddLeadInput{Source: "rent", Email: "nope", Phone: "123"}, []string{"email", "phone"}},
		{"long name", usecase.AddLeadInput{Source: "rent", Name: strings.Repeat("x", 201)}, []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fields, fields(usecase.ValidateAddLeadInput(tt.input)))
		})
	}
}

func TestValidateCreateManagerInput(t *testing.T) {
	errs := usecase.ValidateCreateManagerInput(usecase.CreateManagerInput{
		ID: "m1", Name: "Anna", SourceTypes: []string{"primary", "rent"},
	})
	assert.Empty(t, errs)

	errs = usecase.ValidateCreateManagerInput(usecase.CreateManagerInput{SourceTypes: []string{"walk_in"}})
	assert.Equal(t, []string{"id", "name", "source_types"}, fields(errs))

	errs = usecase.ValidateCreateManagerInput(usecase.CreateManagerInput{ID: "m1", Name: "Anna"})
	assert.Equal(t, []string{"source_types"}, fields(errs))
}

func TestValidatePatchManagerInput(t *testing.T) {
	blank := ""
	assert.Empty(t, usecase.ValidatePatchManagerInput(usecase.PatchManagerInput{Email: &blank}))
	assert.Equal(t, []string{"name"}, fields(usecase.ValidatePatchManagerInput(usecase.PatchManagerInput{Name: &blank})))
}

func TestValidationErrorsMessage(t *testing.T) {
	err := usecase.ValidationErrors{{Field: "source", Message: "is required"}, {Field: "rule", Message: "is invalid"}}
	assert.Equal(t, "source: is required; rule: is invalid", err.Error())
}

func TestValidateLeadPartnerInput(t *testing.T) {
	assert.Empty(t, usecase.ValidateCreateLeadPartnerInput(usecase.CreateLeadPartnerInput{
		PartnerID: "p1", Name: "Agency", Permissions: map[string]bool{entity.PermissionViewLeads: true},
	}))
	assert.Equal(t, []string{"partner_id", "name"}, fields(usecase.ValidateCreateLeadPartnerInput(usecase.CreateLeadPartnerInput{})))
	assert.Equal(t, []string{"permissions"}, fields(usecase.ValidatePatchLeadPartnerInput(usecase.PatchLeadPartnerInput{
		Permissions: map[string]bool{"fly": true},
	})))
}

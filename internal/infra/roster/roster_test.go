package roster

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
)

const sample = `
managers:
  - id: anna
    name: Anna
    email: anna@example.com
    source_types: [primary, secondary]
  - id: boris
    name: Boris
    source_types: [rent]
partners:
  - id: p1
    name: Olga
  - id: p2
lead_partners:
  - id: lp1
    partner_id: p1
    name: Olga's agency
    permissions:
      view_leads: true
      take_leads: false
`

func TestParse(t *testing.T) {
	r, err := Parse([]byte(sample))
	require.NoError(t, err)

	managers := r.ManagerEntities()
	require.Len(t, managers, 2)
	assert.Equal(t, "anna@example.com", managers[0].Email)
	assert.True(t, managers[0].Serves(entity.SourceSecondary))
	assert.Equal(t, []entity.LeadSource{entity.SourceRent}, managers[1].SourceTypes)

	assert.Equal(t, []entity.Partner{{ID: "p1", Name: "Olga"}, {ID: "p2"}}, r.Partners)
	require.Len(t, r.LeadPartners, 1)
	assert.True(t, r.LeadPartners[0].Permissions[entity.PermissionViewLeads])
}

func TestParseRejectsBadRoster(t *testing.T) {
	_, err := Parse([]byte(`
managers:
  - id: anna
    source_types: [walk_in]
  - id: anna
  - name: nobody
    source_types: [rent]
partners:
  - name: ghost
lead_partners:
  - id: lp1
    permissions: {fly: true}
  - id: lp1
    partner_id: p9
`))
	require.Error(t, err)

	for _, want := range []string{
		`unknown queue "walk_in"`,
		`duplicate id "anna"`,
		"managers[1]: source_types must not be empty",
		"managers[2]: id is required",
		"partners[0]: id is required",
		`unknown permission "fly"`,
		"lead_partners[0]: partner_id is required",
		`lead_partners[1]: duplicate id "lp1"`,
	} {
		assert.Contains(t, err.Error(), want)
	}

	_, err = Parse([]byte("managers: {"))
	assert.ErrorContains(t, err, "parse roster")
}

func TestLoadFile(t *testing.T) {
	r, err := LoadFile("")
	require.NoError(t, err)
	assert.Empty(t, r.Managers)

	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	r, err = LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, r.Managers, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestStaticDirectory(t *testing.T) {
	d := StaticDirectory{Partners: []entity.Partner{{ID: "p1"}, {ID: "p2"}}}

	got, err := d.ListPartners(context.Background())
	require.NoError(t, err)
	got[0].ID = "changed"

	again, _ := d.ListPartners(context.Background())
	assert.Equal(t, "p1", again[0].ID)
}

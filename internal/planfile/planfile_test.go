package planfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/feasibility-cli/internal/cost"
	"github.com/sells-group/feasibility-cli/internal/model"
)

const planYAML = `
category: DIGITAL_SERVICE
capital: 50000
team: AGENCY
legal: YES
runway: "6"
staff: ZERO
office: REMOTE
marketing: PAID_ADS
business_model: SUBSCRIPTION
audience: B2B
competition: MODERATE
founder_role: MANAGER
city: OTHER
unit_price: 99.5
target_volume: 120
value_prop: SPEED
mvp_ready: YES
key_challenge: TALENT
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, FormatJSON, FormatOf("plan.json"))
	assert.Equal(t, FormatJSON, FormatOf("PLAN.JSON"))
	assert.Equal(t, FormatYAML, FormatOf("plan.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("plan.yml"))
	assert.Equal(t, FormatYAML, FormatOf("plan"))
}

func TestLoad_YAML(t *testing.T) {
	t.Parallel()
	p, err := Load(writeFile(t, "plan.yaml", planYAML))
	require.NoError(t, err)

	assert.Equal(t, model.CategoryDigitalService, p.Category)
	assert.Equal(t, model.LegalYes, p.Legal)
	assert.Equal(t, model.Runway6, p.Runway)
	require.NotNil(t, p.Capital)
	assert.InDelta(t, 50000, *p.Capital, 0.001)
	assert.InDelta(t, 99.5, model.Value(p.UnitPrice), 0.001)
	assert.Empty(t, p.Scope)
}

func TestLoad_JSON(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "plan.json", `{"category":"WEBSITE","capital":0,"runway":"18","scope":"KINGDOM"}`)
	p, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, model.CategoryWebsite, p.Category)
	assert.Equal(t, model.Runway18, p.Runway)
	assert.Equal(t, model.ScopeKingdom, p.Scope)
	require.NotNil(t, p.Capital, "explicit zero is not unset")
	assert.Nil(t, p.UnitPrice)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unknown yaml key", "plan.yaml", "category: WEBSITE\nbudget: 5\n", "decode yaml"},
		{"unknown json key", "plan.json", `{"category":"WEBSITE","budget":5}`, "decode json"},
		{"bad json", "plan.json", `{"category":`, "decode json"},
		{"empty yaml", "plan.yaml", "", "empty document"},
		{"wrong type", "plan.yaml", "capital: lots\n", "decode yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), tt.file)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "planfile: open")
}

func TestDecode_UnknownFormat(t *testing.T) {
	t.Parallel()
	_, err := Decode(strings.NewReader("{}"), "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestLoadTables_Overlay(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "tables.yaml", `
rent:
  OFFICE: 9000
city_multiplier:
  RIYADH: 1.3
tech_salary: 16000
`)
	tbl, err := LoadTables(path)
	require.NoError(t, err)

	def := cost.DefaultTables()
	assert.InDelta(t, 9000, tbl.Rent[model.OfficePrivate], 0.001)
	assert.InDelta(t, def.Rent[model.OfficeCoworking], tbl.Rent[model.OfficeCoworking], 0.001)
	assert.InDelta(t, 1.3, tbl.CityMultiplier[model.CityRiyadh], 0.001)
	assert.InDelta(t, def.CityMultiplier[model.CityJeddah], tbl.CityMultiplier[model.CityJeddah], 0.001)
	assert.InDelta(t, 16000, tbl.TechSalary, 0.001)
	assert.InDelta(t, def.FullBuildMul, tbl.FullBuildMul, 0.001)
}

func TestLoadTables_JSON(t *testing.T) {
	t.Parallel()
	tbl, err := LoadTables(writeFile(t, "tables.json", `{"setup_misc": 20000}`))
	require.NoError(t, err)
	assert.InDelta(t, 20000, tbl.SetupMisc, 0.001)
}

func TestLoadTables_Invalid(t *testing.T) {
	t.Parallel()
	_, err := LoadTables(writeFile(t, "tables.yaml", "full_build_mul: 0.5\ncity_multiplier:\n  OTHER: 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "full_build_mul must be >= 1")
	assert.Contains(t, err.Error(), "city_multiplier[OTHER] must be > 0")
}

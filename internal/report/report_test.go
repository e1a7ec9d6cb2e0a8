package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/feasibility-cli/internal/display"
	"github.com/sells-group/feasibility-cli/internal/feasibility"
	"github.com/sells-group/feasibility-cli/internal/model"
)

func samplePlan() model.PlanInput {
	return model.PlanInput{
		Category:      model.CategoryDigitalService,
		Capital:       model.Amount(50000),
		Team:          model.TeamAgency,
		Legal:         model.LegalYes,
		Runway:        model.Runway6,
		Staff:         model.StaffZero,
		Office:        model.OfficeRemote,
		Marketing:     model.MarketingOrganic,
		BusinessModel: model.ModelSubscription,
		Audience:      model.AudienceB2C,
		Competition:   model.CompetitionBlueOcean,
		FounderRole:   model.FounderDeveloper,
		City:          model.CityRiyadh,
		UnitPrice:     model.Amount(100),
		TargetVolume:  model.Amount(50),
		ValueProp:     model.ValueUnique,
		MVPReady:      model.MVPYes,
		KeyChallenge:  model.ChallengeCompetition,
	}
}

func sampleDoc(t *testing.T, cur display.Currency, narrative string) *Document {
	t.Helper()
	plan := samplePlan()
	r, err := feasibility.Evaluate(plan)
	require.NoError(t, err)
	f, err := display.New(cur, display.DefaultRates())
	require.NoError(t, err)
	d, err := NewDocument(plan, r, f, narrative)
	require.NoError(t, err)
	return d
}

func TestNewDocument(t *testing.T) {
	t.Parallel()
	_, err := NewDocument(samplePlan(), nil, nil, "")
	require.Error(t, err)

	r, err := feasibility.Evaluate(samplePlan())
	require.NoError(t, err)
	d, err := NewDocument(samplePlan(), r, nil, "")
	require.NoError(t, err)
	assert.Equal(t, display.SAR, d.money.Currency())
	assert.Equal(t, "Feasibility Report: Digital service", d.Title())
	assert.Equal(t, "Score 27/100, not feasible, risk LOW", d.Verdict())
}

func TestMarkdown(t *testing.T) {
	t.Parallel()
	md := sampleDoc(t, display.SAR, "Agency cost is the leak.\nBuild in-house.").Markdown()

	assert.True(t, strings.HasPrefix(md, "# Feasibility Report: Digital service\n"))
	assert.Contains(t, md, "**Score 27/100, not feasible, risk LOW**")
	assert.Contains(t, md, "> Agency cost is the leak. Build in-house.")
	assert.Contains(t, md, "| Required capital | 148,350 SAR |")
	assert.Contains(t, md, "| Funding gap | 98,350 SAR |")
	assert.Contains(t, md, "| Break-even sales | 53 units / month |")
	assert.Contains(t, md, "| Implied valuation (10% equity) | 983,500 SAR |")
	assert.Contains(t, md, "| Operating for 6 months | 31,500 SAR |")
	assert.Contains(t, md, "| Month | Revenue | Expenses | Balance |")
	assert.Contains(t, md, "| 12 | 5,000 SAR | 5,250 SAR |")
	assert.Contains(t, md, "### Strengths")
	assert.Contains(t, md, "- A chance to lead a new market")
	assert.Contains(t, md, "## Funding options")
	assert.Contains(t, md, "(https://svc.com.sa)")
	assert.Contains(t, md, "| What are you building? | Digital service |")
	assert.Contains(t, md, "| How much capital do you have (SAR)? | 50000 |")
	assert.NotContains(t, md, "Where will you operate?", "unanswered optional field is skipped")
}

func TestMarkdown_USD(t *testing.T) {
	t.Parallel()
	md := sampleDoc(t, display.USD, "").Markdown()
	assert.Contains(t, md, "| Required capital | $39,560 |")
	assert.NotContains(t, md, "> ")
}

func TestHTML(t *testing.T) {
	t.Parallel()
	out, err := sampleDoc(t, display.EUR, "Keep it <lean>.").HTML()
	require.NoError(t, err)

	page := string(out)
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>Feasibility Report: Digital service</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<h2")
	assert.Contains(t, page, "€37,088")
	assert.Contains(t, page, `<input disabled="" type="checkbox"`)
	assert.NotContains(t, page, "<lean>")
	assert.True(t, strings.HasSuffix(page, "</html>\n"))
}

func TestPDF(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, sampleDoc(t, display.EUR, "Two sentences … with a euro € sign.").PDF(&buf))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestXLSX(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, sampleDoc(t, display.USD, "").XLSX(&buf))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 3)

	summary := f.Sheet[SheetSummary]
	require.NotNil(t, summary)
	assert.Equal(t, "Currency", summary.Rows[1].Cells[0].String())
	assert.Equal(t, "USD", summary.Rows[1].Cells[1].String())
	assert.Equal(t, "Required capital", summary.Rows[5].Cells[0].String())
	assert.Equal(t, "39560", summary.Rows[5].Cells[1].Value)

	cash := f.Sheet[SheetCashFlow]
	require.NotNil(t, cash)
	require.Len(t, cash.Rows, 13)
	assert.Equal(t, "Month", cash.Rows[0].Cells[0].String())
	assert.Equal(t, "12", cash.Rows[12].Cells[0].Value)

	costs := f.Sheet[SheetCosts]
	require.NotNil(t, costs)
	assert.Equal(t, "Development", costs.Rows[1].Cells[0].String())
}

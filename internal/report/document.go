// Package report renders a feasibility report as Markdown, HTML, PDF or an
// XLSX workbook.
package report

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sells-group/feasibility-cli/internal/catalog"
	"github.com/sells-group/feasibility-cli/internal/display"
	"github.com/sells-group/feasibility-cli/internal/model"
)

// Document is everything a renderer needs.
type Document struct {
	Plan      model.PlanInput
	Report    *model.FeasibilityReport
	Narrative string

	money   *display.Formatter
	summary display.Summary
}

// NewDocument prepares a report for rendering. A nil formatter renders SAR.
func NewDocument(plan model.PlanInput, r *model.FeasibilityReport, f *display.Formatter, narrative string) (*Document, error) {
	if r == nil {
		return nil, eris.New("report: nil feasibility report")
	}
	if f == nil {
		var err error
		f, err = display.New(display.SAR, display.DefaultRates())
		if err != nil {
			return nil, err
		}
	}
	return &Document{
		Plan:      plan,
		Report:    r,
		Narrative: narrative,
		money:     f,
		summary:   f.Summarize(r, display.DefaultEquity),
	}, nil
}

// Title is the document heading.
func (d *Document) Title() string {
	return "Feasibility Report: " + catalog.Label("category", string(d.Plan.Category))
}

// Verdict is the one-line score summary.
func (d *Document) Verdict() string {
	state := "not feasible"
	if d.Report.IsFeasible {
		state = "feasible"
	}
	return fmt.Sprintf("Score %d/100, %s, risk %s", d.Report.Score, state, d.Report.RiskLevel)
}

// row is a label/value pair shared by the renderers.
type row struct {
	Label string
	Value string
}

func (d *Document) keyFigures() []row {
	r := d.Report
	rows := []row{
		{"Required capital", d.summary.RequiredCapital},
		{"Your capital", d.summary.UserCapital},
		{"Funding gap", d.summary.FundingGap},
		{"Monthly burn", d.summary.BurnRateMonthly},
		{"Runway covered", fmt.Sprintf("%g months", r.ActualRunwayMonths)},
		{"Break-even sales", fmt.Sprintf("%d units / month", r.BreakEvenUnits)},
		{"Projected revenue", d.summary.RevenueMonthly + " / month"},
		{"Net profit", d.money.Money(r.NetProfitMonthly) + " / month"},
		{"City cost factor", fmt.Sprintf("x%g", r.CityAdjustmentFactor)},
	}
	if v := d.summary.Valuation; v != nil {
		rows = append(rows, row{
			fmt.Sprintf("Implied valuation (%d%% equity)", v.EquityPercent),
			d.money.Amount(v.Valuation),
		})
	}
	return rows
}

func (d *Document) costRows() []row {
	b := d.Report.Breakdown
	m := d.money
	return []row{
		{"Development", m.Money(float64(b.Capex.Dev))},
		{"Setup and licensing", m.Money(float64(b.Capex.Setup))},
		{"One-time total", m.Money(float64(b.Capex.Total))},
		{"Salaries / month", m.Money(float64(b.Opex.Salaries))},
		{"Rent / month", m.Money(float64(b.Opex.Rent))},
		{"Marketing / month", m.Money(float64(b.Opex.Marketing))},
		{"Operating / month", m.Money(float64(b.Opex.TotalMonthly))},
		{fmt.Sprintf("Operating for %d months", d.Plan.Runway.Months()), m.Money(float64(b.Opex.TotalRunway))},
		{"Safety buffer", m.Money(float64(b.Buffer))},
	}
}

func (d *Document) answerRows() []row {
	var rows []row
	for _, f := range catalog.Fields() {
		var v string
		switch f.Name {
		case "capital":
			v = amount(d.Plan.Capital)
		case "unit_price":
			v = amount(d.Plan.UnitPrice)
		case "target_volume":
			v = amount(d.Plan.TargetVolume)
		default:
			v = f.Label(d.enumValue(f.Name))
		}
		if v == "" {
			continue
		}
		rows = append(rows, row{f.Question, v})
	}
	return rows
}

func (d *Document) enumValue(name string) string {
	for _, ef := range d.Plan.EnumFields() {
		if ef.Name == name {
			return ef.Value
		}
	}
	return ""
}

func amount(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%g", *p)
}

type swotQuadrant struct {
	Title string
	Items []string
}

func (d *Document) swot() []swotQuadrant {
	s := d.Report.Swot
	return []swotQuadrant{
		{"Strengths", s.DisplayStrengths()},
		{"Weaknesses", s.DisplayWeaknesses()},
		{"Opportunities", s.DisplayOpportunities()},
		{"Threats", s.DisplayThreats()},
	}
}

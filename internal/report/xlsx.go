package report

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Workbook sheet names.
const (
	SheetSummary  = "Summary"
	SheetCashFlow = "Cash Flow"
	SheetCosts    = "Costs"
)

// XLSX writes a workbook with the summary, the cash-flow projection and the
// cost breakdown. Amounts are numeric cells in the display currency.
func (d *Document) XLSX(w io.Writer) error {
	f := xlsx.NewFile()
	r := d.Report
	conv := func(sar float64) int64 { return d.money.Convert(sar).IntPart() }

	summary, err := f.AddSheet(SheetSummary)
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}
	addStrings(summary, "Item", "Value")
	addStrings(summary, "Currency", string(d.money.Currency()))
	addInt(summary, "Score", int64(r.Score))
	addStrings(summary, "Feasible", yesNo(r.IsFeasible))
	addStrings(summary, "Risk level", string(r.RiskLevel))
	addInt(summary, "Required capital", conv(float64(r.RequiredCapital)))
	addInt(summary, "Your capital", conv(r.UserCapital))
	addInt(summary, "Funding gap", conv(r.FundingGap))
	addInt(summary, "Monthly burn", conv(float64(r.BurnRateMonthly)))
	addFloat(summary, "Runway covered (months)", r.ActualRunwayMonths)
	addInt(summary, "Break-even units / month", r.BreakEvenUnits)
	addInt(summary, "Projected revenue / month", conv(r.ProjectedRevenue))
	addInt(summary, "Net profit / month", conv(r.NetProfitMonthly))
	addFloat(summary, "City cost factor", r.CityAdjustmentFactor)

	cash, err := f.AddSheet(SheetCashFlow)
	if err != nil {
		return eris.Wrap(err, "report: add cash flow sheet")
	}
	header := cash.AddRow()
	for _, h := range []string{"Month", "Revenue", "Expenses", "Balance"} {
		header.AddCell().SetString(h)
	}
	for _, m := range r.CashFlow {
		row := cash.AddRow()
		row.AddCell().SetInt(m.Period)
		row.AddCell().SetInt64(conv(float64(m.Revenue)))
		row.AddCell().SetInt64(conv(float64(m.Expenses)))
		row.AddCell().SetInt64(conv(float64(m.Balance)))
	}

	costs, err := f.AddSheet(SheetCosts)
	if err != nil {
		return eris.Wrap(err, "report: add costs sheet")
	}
	b := r.Breakdown
	addStrings(costs, "Item", "Amount")
	addInt(costs, "Development", conv(float64(b.Capex.Dev)))
	addInt(costs, "Setup and licensing", conv(float64(b.Capex.Setup)))
	addInt(costs, "One-time total", conv(float64(b.Capex.Total)))
	addInt(costs, "Salaries / month", conv(float64(b.Opex.Salaries)))
	addInt(costs, "Rent / month", conv(float64(b.Opex.Rent)))
	addInt(costs, "Marketing / month", conv(float64(b.Opex.Marketing)))
	addInt(costs, "Operating / month", conv(float64(b.Opex.TotalMonthly)))
	addInt(costs, "Operating for runway", conv(float64(b.Opex.TotalRunway)))
	addInt(costs, "Safety buffer", conv(float64(b.Buffer)))

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "report: write xlsx")
	}
	return nil
}

func addStrings(s *xlsx.Sheet, values ...string) {
	row := s.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func addInt(s *xlsx.Sheet, label string, v int64) {
	row := s.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetInt64(v)
}

func addFloat(s *xlsx.Sheet, label string, v float64) {
	row := s.AddRow()
	row.AddCell().SetString(label)
	row.AddCell().SetFloat(v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

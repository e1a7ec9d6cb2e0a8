package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/rotisserie/eris"
)

const (
	pdfFont       = "Helvetica"
	pdfLineHeight = 6.0
	pdfWidth      = 180.0 // A4 minus 15mm margins
)

type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// PDF writes a printable report to w.
func (d *Document) PDF(w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(d.Title(), true)
	pdf.SetCreator("feasibility", true)
	pdf.AddPage()

	p := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	r := d.Report

	pdf.SetFont(pdfFont, "B", 16)
	pdf.MultiCell(pdfWidth, 8, p.tr(d.Title()), "", "L", false)
	pdf.Ln(2)

	if r.IsFeasible {
		pdf.SetFillColor(220, 252, 231)
	} else {
		pdf.SetFillColor(254, 226, 226)
	}
	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(pdfWidth, 10, p.tr(d.Verdict()), "1", 1, "C", true, 0, "")
	pdf.Ln(3)

	if d.Narrative != "" {
		pdf.SetFont(pdfFont, "I", 10)
		pdf.MultiCell(pdfWidth, pdfLineHeight, p.tr(oneLine(d.Narrative)), "", "L", false)
		pdf.Ln(3)
	}

	p.section("Key figures")
	p.table([]float64{100, 80}, []string{"Item", "Amount"}, rowsToCells(d.keyFigures()))

	p.section("Cost breakdown")
	p.table([]float64{100, 80}, []string{"Item", "Amount"}, rowsToCells(d.costRows()))

	p.section("Cash flow, first 12 months")
	cells := make([][]string, 0, len(r.CashFlow))
	for _, m := range r.CashFlow {
		cells = append(cells, []string{
			fmt.Sprintf("%d", m.Period),
			d.money.Money(float64(m.Revenue)),
			d.money.Money(float64(m.Expenses)),
			d.money.Money(float64(m.Balance)),
		})
	}
	p.table([]float64{30, 50, 50, 50}, []string{"Month", "Revenue", "Expenses", "Balance"}, cells)

	p.section("SWOT")
	for _, q := range d.swot() {
		pdf.SetFont(pdfFont, "B", 10)
		pdf.CellFormat(pdfWidth, pdfLineHeight, p.tr(q.Title), "", 1, "L", false, 0, "")
		p.bullets(q.Items, "-")
	}

	if len(r.Tips) > 0 {
		p.section("Advice")
		p.bullets(r.Tips, "-")
	}
	if len(r.Checklist) > 0 {
		p.section("Regulatory checklist")
		p.bullets(r.Checklist, "[ ]")
	}
	if len(r.FundingRecommendations) > 0 {
		p.section("Funding options")
		for _, f := range r.FundingRecommendations {
			pdf.SetFont(pdfFont, "B", 10)
			pdf.CellFormat(pdfWidth, pdfLineHeight, p.tr(f.Name), "", 1, "L", false, 0, f.URL)
			pdf.SetFont(pdfFont, "", 9)
			pdf.MultiCell(pdfWidth, 5, p.tr(f.Description), "", "L", false)
			pdf.Ln(1)
		}
	}

	if err := pdf.Error(); err != nil {
		return eris.Wrap(err, "report: build pdf")
	}
	if err := pdf.Output(w); err != nil {
		return eris.Wrap(err, "report: write pdf")
	}
	return nil
}

func (p *pdfWriter) section(title string) {
	p.pdf.Ln(2)
	p.pdf.SetFont(pdfFont, "B", 13)
	p.pdf.CellFormat(pdfWidth, 8, p.tr(title), "B", 1, "L", false, 0, "")
	p.pdf.Ln(2)
}

func (p *pdfWriter) table(widths []float64, header []string, rows [][]string) {
	p.pdf.SetFont(pdfFont, "B", 10)
	p.pdf.SetFillColor(241, 245, 249)
	for i, h := range header {
		p.pdf.CellFormat(widths[i], 7, p.tr(h), "1", 0, "L", true, 0, "")
	}
	p.pdf.Ln(-1)

	p.pdf.SetFont(pdfFont, "", 10)
	for _, r := range rows {
		for i, c := range r {
			align := "L"
			if i > 0 {
				align = "R"
			}
			p.pdf.CellFormat(widths[i], 6, p.tr(c), "1", 0, align, false, 0, "")
		}
		p.pdf.Ln(-1)
	}
	p.pdf.Ln(3)
}

func (p *pdfWriter) bullets(items []string, mark string) {
	p.pdf.SetFont(pdfFont, "", 10)
	for _, it := range items {
		p.pdf.CellFormat(8, pdfLineHeight, p.tr(mark), "", 0, "L", false, 0, "")
		p.pdf.MultiCell(pdfWidth-8, pdfLineHeight, p.tr(oneLine(it)), "", "L", false)
	}
	p.pdf.Ln(2)
}

package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown renders the document as GitHub-flavoured Markdown.
func (d *Document) Markdown() string {
	var b strings.Builder
	r := d.Report

	fmt.Fprintf(&b, "# %s\n\n", d.Title())
	fmt.Fprintf(&b, "**%s**\n\n", d.Verdict())
	if d.Narrative != "" {
		fmt.Fprintf(&b, "> %s\n\n", oneLine(d.Narrative))
	}

	b.WriteString("## Key figures\n\n")
	writeTable(&b, []string{"Item", "Amount"}, rowsToCells(d.keyFigures()))

	b.WriteString("## Cost breakdown\n\n")
	writeTable(&b, []string{"Item", "Amount"}, rowsToCells(d.costRows()))

	b.WriteString("## Cash flow, first 12 months\n\n")
	cells := make([][]string, 0, len(r.CashFlow))
	for _, m := range r.CashFlow {
		cells = append(cells, []string{
			fmt.Sprintf("%d", m.Period),
			d.money.Money(float64(m.Revenue)),
			d.money.Money(float64(m.Expenses)),
			d.money.Money(float64(m.Balance)),
		})
	}
	writeTable(&b, []string{"Month", "Revenue", "Expenses", "Balance"}, cells)

	b.WriteString("## SWOT\n\n")
	for _, q := range d.swot() {
		fmt.Fprintf(&b, "### %s\n\n", q.Title)
		writeList(&b, q.Items, "- ")
	}

	if len(r.Tips) > 0 {
		b.WriteString("## Advice\n\n")
		writeList(&b, r.Tips, "- ")
	}

	if len(r.Checklist) > 0 {
		b.WriteString("## Regulatory checklist\n\n")
		writeList(&b, r.Checklist, "- [ ] ")
	}

	if len(r.FundingRecommendations) > 0 {
		b.WriteString("## Funding options\n\n")
		for _, f := range r.FundingRecommendations {
			fmt.Fprintf(&b, "- [%s](%s): %s\n", f.Name, f.URL, f.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Your answers\n\n")
	writeTable(&b, []string{"Question", "Answer"}, rowsToCells(d.answerRows()))

	return b.String()
}

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body{font-family:system-ui,sans-serif;max-width:860px;margin:2rem auto;padding:0 1rem;color:#1e293b}
table{border-collapse:collapse;width:100%%;margin-bottom:1.5rem}
th,td{border:1px solid #cbd5e1;padding:.35rem .6rem;text-align:left}
th{background:#f1f5f9}
blockquote{border-left:4px solid #0ea5e9;margin:0;padding:.5rem 1rem;background:#f0f9ff}
</style>
</head>
<body>
`

// HTML renders the Markdown through goldmark into a standalone page.
func (d *Document) HTML() ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(d.Markdown()), &body); err != nil {
		return nil, eris.Wrap(err, "report: render html")
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, htmlHead, escapeHTML(d.Title()))
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, r := range rows {
		esc := make([]string, len(r))
		for i, c := range r {
			esc[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(esc, " | ") + " |\n")
	}
	b.WriteString("\n")
}

func writeList(b *strings.Builder, items []string, bullet string) {
	for _, it := range items {
		b.WriteString(bullet + oneLine(it) + "\n")
	}
	b.WriteString("\n")
}

func rowsToCells(rows []row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Label, r.Value}
	}
	return out
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

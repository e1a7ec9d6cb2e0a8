package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/feasibility-cli/internal/display"
	"github.com/sells-group/feasibility-cli/internal/feasibility"
	"github.com/sells-group/feasibility-cli/internal/model"
)

const agencyPlan = `
category: DIGITAL_SERVICE
capital: 50000
team: AGENCY
legal: YES
runway: "6"
staff: ZERO
office: REMOTE
marketing: ORGANIC
business_model: SUBSCRIPTION
audience: B2C
competition: BLUE_OCEAN
founder_role: DEVELOPER
city: RIYADH
unit_price: 100
target_volume: 50
value_prop: UNIQUE
mvp_ready: YES
key_challenge: COMPETITION
`

func writePlan(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type fixedNarrator string

func (n fixedNarrator) Insight(context.Context, model.PlanInput, *model.FeasibilityReport) string {
	return string(n)
}

func TestEvaluateFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	rich := strings.Replace(agencyPlan, "capital: 50000", "capital: 500000", 1)
	paths := []string{
		writePlan(t, dir, "a.yaml", agencyPlan),
		writePlan(t, dir, "b.yaml", rich),
		writePlan(t, dir, "c.yaml", agencyPlan),
	}

	results, err := evaluateFiles(context.Background(), feasibility.Default(), fixedNarrator("ok"), paths, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, ev := range results {
		assert.Equal(t, paths[i], ev.Path, "results keep input order")
		assert.Equal(t, "ok", ev.Narrative)
	}
	assert.Equal(t, 27, results[0].Report.Score)
	assert.True(t, results[1].Report.IsFeasible)
	assert.Equal(t, results[0].Report, results[2].Report)
}

func TestEvaluateFiles_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	good := writePlan(t, dir, "good.yaml", agencyPlan)
	partial := writePlan(t, dir, "partial.yaml", "category: WEBSITE\n")

	tests := []struct {
		name    string
		paths   []string
		wantErr string
		check   func(t *testing.T, err error)
	}{
		{
			name:    "missing file",
			paths:   []string{good, filepath.Join(dir, "nope.yaml")},
			wantErr: "nope.yaml",
		},
		{
			name:    "incomplete plan",
			paths:   []string{partial},
			wantErr: "partial.yaml",
			check: func(t *testing.T, err error) {
				var missing *feasibility.MissingFieldError
				require.True(t, errors.As(err, &missing))
				assert.Contains(t, missing.Fields, "capital")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := evaluateFiles(context.Background(), feasibility.Default(), nil, tt.paths, 4)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func sampleResults(t *testing.T) []evaluation {
	t.Helper()
	path := writePlan(t, t.TempDir(), "plan.yaml", agencyPlan)
	results, err := evaluateFiles(context.Background(), feasibility.Default(), nil, []string{path}, 1)
	require.NoError(t, err)
	return results
}

func formatter(t *testing.T, c display.Currency) *display.Formatter {
	t.Helper()
	f, err := display.New(c, display.DefaultRates())
	require.NoError(t, err)
	return f
}

func TestWriteResults_JSON(t *testing.T) {
	t.Parallel()
	results := sampleResults(t)

	var buf bytes.Buffer
	require.NoError(t, writeResults(&buf, results, formatter(t, display.SAR), outputJSON, 10))

	var out []evaluationOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, results[0].Path, out[0].File)
	assert.Equal(t, int64(148350), out[0].Report.RequiredCapital)
	assert.Nil(t, out[0].Display, "no display block in the base currency")

	buf.Reset()
	require.NoError(t, writeResults(&buf, results, formatter(t, display.USD), outputJSON, 25))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.NotNil(t, out[0].Display)
	assert.Equal(t, "$39,560", out[0].Display.RequiredCapital)
	assert.Equal(t, 25, out[0].Display.Valuation.EquityPercent)
}

func TestWriteResults_Markdown(t *testing.T) {
	t.Parallel()
	results := sampleResults(t)
	results = append(results, results[0])

	var buf bytes.Buffer
	require.NoError(t, writeResults(&buf, results, formatter(t, display.SAR), outputMarkdown, 10))

	md := buf.String()
	assert.Equal(t, 2, strings.Count(md, "# Feasibility Report: Digital service\n"))
	assert.Contains(t, md, "\n---\n")
}

func TestExportPaths(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		target string
		plans  []string
		want   []string
	}{
		{
			name:   "single plan keeps target",
			target: "out/report.pdf",
			plans:  []string{"plans/a.yaml"},
			want:   []string{"out/report.pdf"},
		},
		{
			name:   "distinct base names",
			target: "out/report.pdf",
			plans:  []string{"plans/a.yaml", "b.json"},
			want:   []string{filepath.Join("out", "a-report.pdf"), filepath.Join("out", "b-report.pdf")},
		},
		{
			name:   "same base name in different directories",
			target: "report.xlsx",
			plans:  []string{"a/plan.yaml", "b/plan.yaml", "c.yaml"},
			want:   []string{"plan-1-report.xlsx", "plan-2-report.xlsx", "c-report.xlsx"},
		},
		{
			name:   "same base name with another extension",
			target: "out/report.pdf",
			plans:  []string{"plan.yaml", "plan.json"},
			want:   []string{filepath.Join("out", "plan-1-report.pdf"), filepath.Join("out", "plan-2-report.pdf")},
		},
		{
			name:   "indexed name clashes with a real base name",
			target: "report.pdf",
			plans:  []string{"plan-2.yaml", "a/plan.yaml", "b/plan.yaml"},
			want:   []string{"plan-2-report.pdf", "plan-2-2-report.pdf", "plan-3-report.pdf"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, exportPaths(tt.target, tt.plans))
		})
	}
}

func TestExportResults_SameBaseName(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b"), 0o755))
	rich := strings.Replace(agencyPlan, "capital: 50000", "capital: 500000", 1)
	paths := []string{
		writePlan(t, filepath.Join(dir, "a"), "plan.yaml", agencyPlan),
		writePlan(t, filepath.Join(dir, "b"), "plan.yaml", rich),
	}
	results, err := evaluateFiles(context.Background(), feasibility.Default(), nil, paths, 2)
	require.NoError(t, err)

	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(out, 0o755))
	require.NoError(t, exportResults(results, formatter(t, display.SAR), "", filepath.Join(out, "report.xlsx")))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"plan-1-report.xlsx", "plan-2-report.xlsx"}, names)
}

func TestExportResults(t *testing.T) {
	t.Parallel()
	results := sampleResults(t)
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "report.pdf")
	xlsxPath := filepath.Join(dir, "report.xlsx")

	require.NoError(t, exportResults(results, formatter(t, display.EUR), pdfPath, xlsxPath))

	pdf, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	book, err := os.ReadFile(xlsxPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(book, []byte("PK")))

	require.NoError(t, exportResults(results, formatter(t, display.EUR), "", ""))
	err = exportResults(results, formatter(t, display.EUR), filepath.Join(dir, "missing", "r.pdf"), "")
	assert.Error(t, err)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/feasibility-cli/internal/display"
	"github.com/sells-group/feasibility-cli/internal/model"
	"github.com/sells-group/feasibility-cli/internal/planfile"
	"github.com/sells-group/feasibility-cli/internal/report"
)

const (
	outputJSON     = "json"
	outputMarkdown = "markdown"
)

var (
	evalCurrency  string
	evalFormat    string
	evalPDF       string
	evalXLSX      string
	evalNarrative bool
	evalEquity    int
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <plan.yaml> [plan.json...]",
	Short: "Evaluate one or more plan files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if evalFormat != outputJSON && evalFormat != outputMarkdown {
			return eris.Errorf("--format must be %s or %s", outputJSON, outputMarkdown)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx, cfg, "evaluate", evalNarrative)
		if err != nil {
			return err
		}
		defer env.Close()

		cur := evalCurrency
		if cur == "" {
			cur = cfg.Display.Currency
		}
		c, err := display.ParseCurrency(cur)
		if err != nil {
			return err
		}
		f, err := display.New(c, env.Rates)
		if err != nil {
			return err
		}

		var n narrator
		if evalNarrative {
			n = env.Advisor
		}
		results, err := evaluateFiles(ctx, env.Engine, n, args, cfg.Evaluate.Concurrency)
		if err != nil {
			return err
		}

		if err := writeResults(cmd.OutOrStdout(), results, f, evalFormat, evalEquity); err != nil {
			return err
		}
		return exportResults(results, f, evalPDF, evalXLSX)
	},
}

func init() {
	evaluateCmd.Flags().StringVar(&evalCurrency, "currency", "", "display currency: SAR, USD or EUR (default from config)")
	evaluateCmd.Flags().StringVar(&evalFormat, "format", outputJSON, "output format: json or markdown")
	evaluateCmd.Flags().StringVar(&evalPDF, "pdf", "", "write a PDF report to this path")
	evaluateCmd.Flags().StringVar(&evalXLSX, "xlsx", "", "write an XLSX workbook to this path")
	evaluateCmd.Flags().BoolVar(&evalNarrative, "narrative", false, "add the generated advisory narrative")
	evaluateCmd.Flags().IntVar(&evalEquity, "equity", display.DefaultEquity, "equity percent offered to investors, for the implied valuation")
	rootCmd.AddCommand(evaluateCmd)
}

type evaluator interface {
	Evaluate(plan model.PlanInput) (*model.FeasibilityReport, error)
}

type narrator interface {
	Insight(ctx context.Context, plan model.PlanInput, r *model.FeasibilityReport) string
}

// evaluation is the outcome for one plan file.
type evaluation struct {
	Path      string
	Plan      model.PlanInput
	Report    *model.FeasibilityReport
	Narrative string
}

// evaluateFiles loads and evaluates every path with at most concurrency
// workers. Results keep the order of paths. The first failure cancels the rest.
func evaluateFiles(ctx context.Context, engine evaluator, n narrator, paths []string, concurrency int) ([]evaluation, error) {
	results := make([]evaluation, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			plan, err := planfile.Load(path)
			if err != nil {
				return err
			}
			r, err := engine.Evaluate(plan)
			if err != nil {
				// Keep the typed field errors reachable with errors.As.
				return fmt.Errorf("evaluate %s: %w", path, err)
			}

			ev := evaluation{Path: path, Plan: plan, Report: r}
			if n != nil {
				ev.Narrative = n.Insight(gCtx, plan, r)
			}
			results[i] = ev

			zap.L().Debug("plan evaluated",
				zap.String("file", path),
				zap.Int("score", r.Score),
				zap.Bool("feasible", r.IsFeasible),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// evaluationOutput is one entry of the JSON output.
type evaluationOutput struct {
	File      string                   `json:"file"`
	Report    *model.FeasibilityReport `json:"report"`
	Display   *display.Summary         `json:"display,omitempty"`
	Narrative string                   `json:"narrative,omitempty"`
}

// writeResults prints results as a JSON array or as Markdown documents
// separated by horizontal rules.
func writeResults(w io.Writer, results []evaluation, f *display.Formatter, format string, equity int) error {
	switch format {
	case outputMarkdown:
		for i, ev := range results {
			doc, err := report.NewDocument(ev.Plan, ev.Report, f, ev.Narrative)
			if err != nil {
				return err
			}
			if i > 0 {
				if _, err := io.WriteString(w, "\n---\n\n"); err != nil {
					return eris.Wrap(err, "write markdown")
				}
			}
			if _, err := io.WriteString(w, doc.Markdown()); err != nil {
				return eris.Wrap(err, "write markdown")
			}
		}
		return nil
	default:
		out := make([]evaluationOutput, len(results))
		for i, ev := range results {
			out[i] = evaluationOutput{File: ev.Path, Report: ev.Report, Narrative: ev.Narrative}
			if f.Currency() != display.SAR {
				sum := f.Summarize(ev.Report, equity)
				out[i].Display = &sum
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(out), "write json")
	}
}

// exportResults writes the PDF and XLSX files requested by the flags.
func exportResults(results []evaluation, f *display.Formatter, pdfPath, xlsxPath string) error {
	if pdfPath == "" && xlsxPath == "" {
		return nil
	}
	planPaths := make([]string, len(results))
	for i, ev := range results {
		planPaths[i] = ev.Path
	}
	pdfPaths := exportPaths(pdfPath, planPaths)
	xlsxPaths := exportPaths(xlsxPath, planPaths)

	for i, ev := range results {
		doc, err := report.NewDocument(ev.Plan, ev.Report, f, ev.Narrative)
		if err != nil {
			return err
		}
		if pdfPath != "" {
			if err := writeFile(pdfPaths[i], doc.PDF); err != nil {
				return err
			}
		}
		if xlsxPath != "" {
			if err := writeFile(xlsxPaths[i], doc.XLSX); err != nil {
				return err
			}
		}
	}
	return nil
}

// exportPaths returns one output path per plan. A single plan writes to
// target. With several plans each output is prefixed with the plan file's
// base name, and repeated base names also get the 1-based argument index.
func exportPaths(target string, planPaths []string) []string {
	out := make([]string, len(planPaths))
	if len(planPaths) <= 1 {
		for i := range out {
			out[i] = target
		}
		return out
	}

	bases := make([]string, len(planPaths))
	counts := make(map[string]int, len(planPaths))
	for i, p := range planPaths {
		bases[i] = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		counts[bases[i]]++
	}

	used := make(map[string]bool, len(planPaths))
	for i, base := range bases {
		name := base
		if counts[base] > 1 {
			name = fmt.Sprintf("%s-%d", base, i+1)
		}
		for used[name] {
			name = fmt.Sprintf("%s-%d", name, i+1)
		}
		used[name] = true
		out[i] = filepath.Join(filepath.Dir(target), name+"-"+filepath.Base(target))
	}
	return out
}

func writeFile(path string, render func(io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	if err := render(out); err != nil {
		out.Close() //nolint:errcheck
		return eris.Wrapf(err, "render %s", path)
	}
	if err := out.Close(); err != nil {
		return eris.Wrapf(err, "close %s", path)
	}
	zap.L().Info("report written", zap.String("path", path))
	return nil
}

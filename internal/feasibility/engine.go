// Package feasibility runs the four evaluation stages and assembles the report.
package feasibility

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/feasibility-cli/internal/advisory"
	"github.com/sells-group/feasibility-cli/internal/cost"
	"github.com/sells-group/feasibility-cli/internal/estimate"
	"github.com/sells-group/feasibility-cli/internal/model"
	"github.com/sells-group/feasibility-cli/internal/scorer"
)

// Engine evaluates plans. It holds only immutable tables and is safe for
// concurrent use.
type Engine struct {
	calc   *cost.Calculator
	scorer *scorer.Scorer
	rules  []advisory.Rule
}

// NewEngine validates the tables and scoring config and returns an Engine.
func NewEngine(tables cost.Tables, cfg scorer.Config, rules []advisory.Rule) (*Engine, error) {
	if err := cost.ValidateTables(tables); err != nil {
		return nil, eris.Wrap(err, "feasibility: new engine")
	}
	if err := scorer.ValidateConfig(cfg); err != nil {
		return nil, eris.Wrap(err, "feasibility: new engine")
	}
	return &Engine{
		calc:   cost.NewCalculator(tables),
		scorer: scorer.New(cfg),
		rules:  rules,
	}, nil
}

// Default returns an Engine with the standard tables and rule battery.
func Default() *Engine {
	e, err := NewEngine(cost.DefaultTables(), scorer.DefaultConfig(), advisory.DefaultRules)
	if err != nil {
		// Built-in tables are covered by tests.
		panic(err)
	}
	return e
}

var defaultEngine = Default()

// Evaluate runs the default engine. See Engine.Evaluate.
func Evaluate(plan model.PlanInput) (*model.FeasibilityReport, error) {
	return defaultEngine.Evaluate(plan)
}

// Evaluate validates the plan and returns its report. A *MissingFieldError or
// *InvalidFieldError is returned, unwrapped, when the plan cannot be evaluated.
// The plan is never modified.
func (e *Engine) Evaluate(plan model.PlanInput) (*model.FeasibilityReport, error) {
	if err := Validate(plan); err != nil {
		return nil, err
	}

	capital := model.Value(plan.Capital)
	price := model.Value(plan.UnitPrice)
	volume := model.Value(plan.TargetVolume)

	breakdown := e.calc.Breakdown(plan)
	burn := breakdown.Opex.TotalMonthly

	projection, err := estimate.Project(breakdown.Capex.Total, burn, capital, price, volume)
	if err != nil {
		return nil, eris.Wrap(err, "feasibility: project cash flow")
	}

	assessment := e.scorer.Assess(plan, breakdown)
	breakdown.Buffer = assessment.Buffer

	advice := advisory.Apply(e.rules, &advisory.Facts{
		Plan:       plan,
		Breakdown:  breakdown,
		Projection: projection,
		Assessment: assessment,
	})

	zap.L().Debug("feasibility: evaluated plan",
		zap.String("category", string(plan.Category)),
		zap.Int64("required_capital", assessment.RequiredCapital),
		zap.Int64("burn", burn),
		zap.Int("score", assessment.Score),
		zap.String("risk", string(assessment.Risk)),
		zap.Strings("rules", advice.Fired),
	)

	return &model.FeasibilityReport{
		Score:                  assessment.Score,
		IsFeasible:             assessment.Feasible,
		RequiredCapital:        assessment.RequiredCapital,
		UserCapital:            capital,
		BurnRateMonthly:        burn,
		ActualRunwayMonths:     assessment.ActualRunwayMonths,
		BreakEvenMonthly:       burn,
		BreakEvenUnits:         projection.BreakEvenUnits,
		ProjectedRevenue:       projection.RevenueMonthly,
		NetProfitMonthly:       projection.NetProfitMonthly,
		CityAdjustmentFactor:   e.calc.CityMultiplier(plan.City),
		Breakdown:              breakdown,
		CashFlow:               projection.CashFlow,
		Swot:                   advice.Swot,
		RiskLevel:              assessment.Risk,
		FundingGap:             assessment.FundingGap,
		FundingRecommendations: advice.Funding,
		Tips:                   advice.Tips,
		Checklist:              advice.Checklist,
	}, nil
}

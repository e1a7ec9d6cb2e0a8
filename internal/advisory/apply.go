package advisory

import (
	"github.com/sells-group/feasibility-cli/internal/model"
)

// Result is everything the rule battery emits for one plan.
type Result struct {
	Swot      model.SwotAnalysis
	Tips      []string
	Checklist []string
	Funding   []model.FundingRecommendation
	Fired     []string // rule IDs in firing order
}

// Apply evaluates every rule in order. Every rule whose predicate holds
// contributes its text; rules never see each other's output.
func Apply(rules []Rule, f *Facts) Result {
	r := Result{
		Swot: model.SwotAnalysis{
			Strengths:     []string{},
			Weaknesses:    []string{},
			Opportunities: []string{},
			Threats:       []string{},
		},
		Tips:      []string{},
		Checklist: []string{},
	}

	for _, rule := range rules {
		if !rule.When(f) {
			continue
		}
		msg := rule.Text(f)
		switch rule.Target {
		case TargetStrength:
			r.Swot.Strengths = append(r.Swot.Strengths, msg)
		case TargetWeakness:
			r.Swot.Weaknesses = append(r.Swot.Weaknesses, msg)
		case TargetOpportunity:
			r.Swot.Opportunities = append(r.Swot.Opportunities, msg)
		case TargetThreat:
			r.Swot.Threats = append(r.Swot.Threats, msg)
		case TargetTip:
			r.Tips = append(r.Tips, msg)
		case TargetChecklist:
			r.Checklist = append(r.Checklist, msg)
		default:
			continue
		}
		r.Fired = append(r.Fired, rule.ID)
	}

	r.Funding = Funding(f.Plan)
	return r
}

package narrative

import (
	"fmt"
	"strings"

	"github.com/sells-group/feasibility-cli/internal/model"
)

// SystemPrompt frames every narrative request.
const SystemPrompt = `You are an experienced Saudi small-business consultant.
You review the budget of a planned venture and reply with exactly two sentences of plain text.
If the plan is SUFFICIENT, confirm which choice in the strategy helped the budget most.
If the plan is INSUFFICIENT, name the single largest leak in the budget (agency cost, rent, salaries or marketing) and suggest one concrete fix.
Do not use markdown, lists or headings.`

// Canned replies used whenever generation fails or is disabled.
const (
	FallbackFeasible   = "Your budget covers operating costs for the chosen runway; invest the surplus in marketing."
	FallbackInfeasible = "Monthly operating costs are too high for your capital; try reducing headcount or working remotely."
)

// Fallback returns the canned reply for the verdict.
func Fallback(feasible bool) string {
	if feasible {
		return FallbackFeasible
	}
	return FallbackInfeasible
}

// Share returns part as a whole-number percentage of total, or 0 when total
// is not positive.
func Share(part, total int64) int64 {
	if total <= 0 {
		return 0
	}
	return model.RoundInt(float64(part) / float64(total) * 100)
}

// BuildPrompt renders the plan and its report into the user prompt.
func BuildPrompt(plan model.PlanInput, r *model.FeasibilityReport) string {
	team := "Agency (one-time cost)"
	if plan.Team == model.TeamInternal {
		team = "In-house (salaries applied)"
	}
	verdict := "INSUFFICIENT"
	if r.IsFeasible {
		verdict = "SUFFICIENT"
	}

	capex := r.Breakdown.Capex
	opex := r.Breakdown.Opex

	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n", plan.Category)
	fmt.Fprintf(&b, "Available capital: %.0f SAR\n", r.UserCapital)
	fmt.Fprintf(&b, "Required capital: %d SAR\n", r.RequiredCapital)
	b.WriteString("\nStrategy:\n")
	fmt.Fprintf(&b, "- Team: %s\n", team)
	fmt.Fprintf(&b, "- Office: %s\n", plan.Office)
	fmt.Fprintf(&b, "- Runway goal: %d months\n", plan.Runway.Months())
	b.WriteString("\nFinancials:\n")
	fmt.Fprintf(&b, "- Monthly burn: %d SAR\n", r.BurnRateMonthly)
	fmt.Fprintf(&b, "- Development cost: %d SAR (%d%%)\n", capex.Dev, Share(capex.Dev, r.RequiredCapital))
	fmt.Fprintf(&b, "- Operating cost for %d months: %d SAR (%d%%)\n",
		plan.Runway.Months(), opex.TotalRunway, Share(opex.TotalRunway, r.RequiredCapital))
	fmt.Fprintf(&b, "- Monthly rent: %d SAR, salaries: %d SAR, marketing: %d SAR\n",
		opex.Rent, opex.Salaries, opex.Marketing)
	fmt.Fprintf(&b, "\nResult: %s (score %d/100)\n", verdict, r.Score)
	return b.String()
}

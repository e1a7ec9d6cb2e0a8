// Package advisory evaluates the qualitative rule battery over a scored plan.
package advisory

import (
	"fmt"

	"github.com/sells-group/feasibility-cli/internal/model"
)

// Target is the report section a rule writes to.
type Target string

const (
	TargetStrength    Target = "strength"
	TargetWeakness    Target = "weakness"
	TargetOpportunity Target = "opportunity"
	TargetThreat      Target = "threat"
	TargetTip         Target = "tip"
	TargetChecklist   Target = "checklist"
)

// Facts is the read-only view rules evaluate against.
type Facts struct {
	Plan       model.PlanInput
	Breakdown  model.CostBreakdown
	Projection model.Projection
	Assessment model.Assessment
}

// Rule is one independent predicate and the text it emits when it holds.
type Rule struct {
	ID     string
	Target Target
	When   func(f *Facts) bool
	Text   func(f *Facts) string
}

func text(s string) func(*Facts) string {
	return func(*Facts) string { return s }
}

// Short-runway threshold below which a liquidity tip fires.
const minSafeRunwayMonths = 6

// DefaultRules is the full battery in output order.
var DefaultRules = []Rule{
	// Strengths.
	{
		ID: "strength.technical_founder", Target: TargetStrength,
		When: func(f *Facts) bool { return f.Plan.FounderRole == model.FounderDeveloper },
		Text: text("A technical founder keeps development cost down"),
	},
	{
		ID: "strength.marketing_founder", Target: TargetStrength,
		When: func(f *Facts) bool { return f.Plan.FounderRole == model.FounderMarketer },
		Text: text("A founder with marketing expertise"),
	},
	{
		ID: "strength.mvp", Target: TargetStrength,
		When: func(f *Facts) bool { return f.Plan.MVPReady == model.MVPYes },
		Text: text("A lean MVP-first launch approach"),
	},
	{
		ID: "strength.unique_offer", Target: TargetStrength,
		When: func(f *Facts) bool { return f.Plan.ValueProp == model.ValueUnique },
		Text: text("An innovative product with little direct competition"),
	},
	{
		ID: "strength.price_edge", Target: TargetStrength,
		When: func(f *Facts) bool { return f.Plan.ValueProp == model.ValuePrice },
		Text: text("A price-based competitive advantage"),
	},

	// Weaknesses.
	{
		ID: "weakness.agency_dependency", Target: TargetWeakness,
		When: func(f *Facts) bool { return f.Plan.Team == model.TeamAgency },
		Text: text("Full dependence on an external agency"),
	},
	{
		ID: "weakness.large_payroll", Target: TargetWeakness,
		When: func(f *Facts) bool { return f.Plan.Staff == model.StaffLarge },
		Text: text("A large and costly team from day one"),
	},
	{
		ID: "weakness.thin_marketing", Target: TargetWeakness,
		When: func(f *Facts) bool {
			return f.Plan.Marketing == model.MarketingOrganic && f.Plan.Competition == model.CompetitionRedOcean
		},
		Text: text("A thin marketing budget in a crowded market"),
	},
	{
		ID: "weakness.fixed_rent", Target: TargetWeakness,
		When: func(f *Facts) bool {
			return f.Plan.Office != model.OfficeRemote && f.Plan.Office != model.OfficeCoworking
		},
		Text: text("High fixed rent commitments"),
	},

	// Opportunities.
	{
		ID: "opportunity.new_market", Target: TargetOpportunity,
		When: func(f *Facts) bool { return f.Plan.Competition == model.CompetitionBlueOcean },
		Text: text("A chance to lead a new market"),
	},
	{
		ID: "opportunity.government_contracts", Target: TargetOpportunity,
		When: func(f *Facts) bool { return f.Plan.Audience == model.AudienceB2G },
		Text: text("Long-term government contracts"),
	},
	{
		ID: "opportunity.capital_city", Target: TargetOpportunity,
		When: func(f *Facts) bool { return f.Plan.City == model.CityRiyadh },
		Text: text("Presence in the region's largest economic hub"),
	},
	{
		ID: "opportunity.digital_scale", Target: TargetOpportunity,
		When: func(f *Facts) bool { return f.Plan.Category == model.CategoryDigitalService },
		Text: text("Room to scale quickly at low marginal cost"),
	},

	// Threats.
	{
		ID: "threat.price_war", Target: TargetThreat,
		When: func(f *Facts) bool { return f.Plan.KeyChallenge == model.ChallengeCompetition },
		Text: text("A possible price war with larger competitors"),
	},
	{
		ID: "threat.licensing_delay", Target: TargetThreat,
		When: func(f *Facts) bool { return f.Plan.KeyChallenge == model.ChallengeLicensing },
		Text: text("Launch delays from regulatory procedures"),
	},
	{
		ID: "threat.talent_retention", Target: TargetThreat,
		When: func(f *Facts) bool { return f.Plan.KeyChallenge == model.ChallengeTalent },
		Text: text("Difficulty retaining skilled staff"),
	},
	{
		ID: "threat.acquisition_cost", Target: TargetThreat,
		When: func(f *Facts) bool { return f.Plan.Competition == model.CompetitionRedOcean },
		Text: text("Customer acquisition cost (CAC) may climb"),
	},

	// Tips.
	{
		ID: "tip.short_runway", Target: TargetTip,
		When: func(f *Facts) bool { return f.Assessment.ActualRunwayMonths < minSafeRunwayMonths },
		Text: text("Your cash does not cover 6 months. Early-stage ventures need 9 to 12 months of safety margin."),
	},
	{
		ID: "tip.full_build", Target: TargetTip,
		When: func(f *Facts) bool { return f.Plan.MVPReady == model.MVPNo },
		Text: text("Launching a complete product multiplies development cost and risk. Start with an MVP."),
	},
	{
		ID: "tip.undifferentiated", Target: TargetTip,
		When: func(f *Facts) bool {
			return f.Plan.KeyChallenge == model.ChallengeCompetition && f.Plan.ValueProp != model.ValueUnique
		},
		Text: text("You are entering a crowded market without a clear innovative edge. Focus on service excellence."),
	},
	{
		ID: "tip.monthly_loss", Target: TargetTip,
		When: func(f *Facts) bool { return f.Projection.NetProfitMonthly < 0 },
		Text: text("Your model loses money every month even at target volume. Raise the price or cut costs."),
	},
	{
		ID: "tip.unrealistic_target", Target: TargetTip,
		When: func(f *Facts) bool {
			return float64(f.Projection.BreakEvenUnits) > model.Value(f.Plan.TargetVolume)
		},
		Text: func(f *Facts) string {
			return fmt.Sprintf("You need to sell %d units to break even, but your target is %s. The target is not realistic.",
				f.Projection.BreakEvenUnits, formatVolume(model.Value(f.Plan.TargetVolume)))
		},
	},

	// Checklist.
	{
		ID: "checklist.commercial_registration", Target: TargetChecklist,
		When: always,
		Text: text("Issue the commercial registration (180 seconds)"),
	},
	{
		ID: "checklist.national_address", Target: TargetChecklist,
		When: always,
		Text: text("Register a national address"),
	},
	{
		ID: "checklist.gosi", Target: TargetChecklist,
		When: hasStaff,
		Text: text("Register with social insurance (GOSI)"),
	},
	{
		ID: "checklist.qiwa", Target: TargetChecklist,
		When: hasStaff,
		Text: text("Register on the Qiwa platform"),
	},
	{
		ID: "checklist.store_verification", Target: TargetChecklist,
		When: func(f *Facts) bool { return f.Plan.Category == model.CategoryEcommerce },
		Text: text("Verify the store on the Saudi Business Center platform"),
	},
	{
		ID: "checklist.municipal_license", Target: TargetChecklist,
		When: func(f *Facts) bool { return f.Plan.Office != model.OfficeRemote },
		Text: func(f *Facts) string {
			authority := "sub-municipality"
			if f.Plan.City == model.CityRiyadh {
				authority = "Riyadh Amanah scope"
			}
			return fmt.Sprintf("Municipal license for the premises (%s)", authority)
		},
	},
}

func always(*Facts) bool { return true }

func hasStaff(f *Facts) bool { return f.Plan.Staff != model.StaffZero }

// formatVolume prints a whole volume without decimals and keeps fractions as entered.
func formatVolume(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

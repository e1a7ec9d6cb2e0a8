package model

// RiskLevel classifies how much safety buffer a plan needs.
type RiskLevel string

const (
	RiskLow  RiskLevel = "LOW"
	RiskHigh RiskLevel = "HIGH"
)

// Capex is the one-time pre-launch cost.
type Capex struct {
	Dev   int64 `json:"dev"`
	Setup int64 `json:"setup"`
	Total int64 `json:"total"`
}

// Opex is the recurring monthly operating cost.
type Opex struct {
	Salaries     int64 `json:"salaries"`
	Rent         int64 `json:"rent"`
	Marketing    int64 `json:"marketing"`
	TotalMonthly int64 `json:"total_monthly"`
	TotalRunway  int64 `json:"total_runway"` // TotalMonthly x requested runway months
}

// CostBreakdown groups one-time and recurring cost with the safety buffer.
type CostBreakdown struct {
	Capex  Capex `json:"capex"`
	Opex   Opex  `json:"opex"`
	Buffer int64 `json:"buffer"`
}

// CashFlowMonth is one period of the first-year projection.
type CashFlowMonth struct {
	Period   int   `json:"period"` // 1..12
	Revenue  int64 `json:"revenue"`
	Expenses int64 `json:"expenses"`
	Balance  int64 `json:"balance"` // cumulative
}

// Projection is the output of the revenue and cash-flow stage.
type Projection struct {
	RevenueMonthly   float64         `json:"revenue_monthly"`
	NetProfitMonthly float64         `json:"net_profit_monthly"`
	BreakEvenUnits   int64           `json:"break_even_units"`
	CashFlow         []CashFlowMonth `json:"cash_flow"`
}

// Assessment is the output of the risk and scoring stage.
type Assessment struct {
	Risk               RiskLevel `json:"risk"`
	RequiredCapital    int64     `json:"required_capital"`
	Buffer             int64     `json:"buffer"`
	Score              int       `json:"score"`
	Feasible           bool      `json:"feasible"`
	FundingGap         float64   `json:"funding_gap"`
	ActualRunwayMonths float64   `json:"actual_runway_months"`
}

// SwotAnalysis holds the four qualitative quadrants. Any quadrant may be empty.
type SwotAnalysis struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// Filler text shown for an empty SWOT quadrant. Display only.
const (
	NoStrengths     = "No standout strengths"
	NoWeaknesses    = "Solid plan!"
	NoOpportunities = "Explore further"
	NoThreats       = "The road looks clear"
)

// DisplayStrengths returns the strengths, or a single filler entry when empty.
func (s SwotAnalysis) DisplayStrengths() []string { return orFiller(s.Strengths, NoStrengths) }

// DisplayWeaknesses returns the weaknesses, or a single filler entry when empty.
func (s SwotAnalysis) DisplayWeaknesses() []string { return orFiller(s.Weaknesses, NoWeaknesses) }

// DisplayOpportunities returns the opportunities, or a single filler entry when empty.
func (s SwotAnalysis) DisplayOpportunities() []string {
	return orFiller(s.Opportunities, NoOpportunities)
}

// DisplayThreats returns the threats, or a single filler entry when empty.
func (s SwotAnalysis) DisplayThreats() []string { return orFiller(s.Threats, NoThreats) }

func orFiller(items []string, filler string) []string {
	if len(items) == 0 {
		return []string{filler}
	}
	return items
}

// FundingRecommendation is a funding source matched to the plan.
type FundingRecommendation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// FeasibilityReport is the engine's only output.
type FeasibilityReport struct {
	Score                  int                     `json:"score"`
	IsFeasible             bool                    `json:"is_feasible"`
	RequiredCapital        int64                   `json:"required_capital"`
	UserCapital            float64                 `json:"user_capital"`
	BurnRateMonthly        int64                   `json:"burn_rate_monthly"`
	ActualRunwayMonths     float64                 `json:"actual_runway_months"`
	BreakEvenMonthly       int64                   `json:"break_even_monthly"` // cash break-even revenue
	BreakEvenUnits         int64                   `json:"break_even_units"`
	ProjectedRevenue       float64                 `json:"projected_revenue_monthly"`
	NetProfitMonthly       float64                 `json:"net_profit_monthly"`
	CityAdjustmentFactor   float64                 `json:"city_adjustment_factor"`
	Breakdown              CostBreakdown           `json:"breakdown"`
	CashFlow               []CashFlowMonth         `json:"cash_flow"`
	Swot                   SwotAnalysis            `json:"swot"`
	RiskLevel              RiskLevel               `json:"risk_level"`
	FundingGap             float64                 `json:"funding_gap"`
	FundingRecommendations []FundingRecommendation `json:"funding_recommendations"`
	Tips                   []string                `json:"tips"`
	Checklist              []string                `json:"checklist"`
}

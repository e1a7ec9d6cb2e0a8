package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/feasibility-cli/internal/model"
)

func lowRiskPlan() model.PlanInput {
	return model.PlanInput{
		Competition:  model.CompetitionModerate,
		Runway:       model.Runway12,
		KeyChallenge: model.ChallengeTalent,
		MVPReady:     model.MVPYes,
	}
}

func TestRisk(t *testing.T) {
	t.Parallel()
	s := New(DefaultConfig())

	tests := []struct {
		name   string
		mutate func(p *model.PlanInput)
		want   model.RiskLevel
	}{
		{"baseline", func(p *model.PlanInput) {}, model.RiskLow},
		{"red ocean long runway", func(p *model.PlanInput) { p.Competition = model.CompetitionRedOcean }, model.RiskLow},
		{"short runway calm market", func(p *model.PlanInput) { p.Runway = model.Runway6 }, model.RiskLow},
		{"red ocean short runway", func(p *model.PlanInput) {
			p.Competition = model.CompetitionRedOcean
			p.Runway = model.Runway6
		}, model.RiskHigh},
		{"licensing", func(p *model.PlanInput) { p.KeyChallenge = model.ChallengeLicensing }, model.RiskHigh},
		{"supply chain", func(p *model.PlanInput) { p.KeyChallenge = model.ChallengeSupplyChain }, model.RiskHigh},
		{"no mvp", func(p *model.PlanInput) { p.MVPReady = model.MVPNo }, model.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := lowRiskPlan()
			tt.mutate(&p)
			assert.Equal(t, tt.want, s.Risk(p))
		})
	}
}

func TestRequiredCapital(t *testing.T) {
	t.Parallel()
	s := New(DefaultConfig())

	buffer, required := s.RequiredCapital(17000, 3550, 12, model.RiskLow)
	// subtotal 59600
	assert.Equal(t, int64(8940), buffer)
	assert.Equal(t, int64(68540), required)

	buffer, required = s.RequiredCapital(17000, 3550, 12, model.RiskHigh)
	assert.Equal(t, int64(14900), buffer)
	assert.Equal(t, int64(74500), required)

	_, required = s.RequiredCapital(17001, 0, 6, model.RiskLow)
	assert.Equal(t, int64(19551), required) // round(19551.15)
}

func TestScore(t *testing.T) {
	t.Parallel()
	s := New(DefaultConfig())

	tests := []struct {
		name     string
		capital  float64
		required int64
		want     int
	}{
		{"exact coverage", 100000, 100000, 80},
		{"five percent surplus", 105000, 100000, 85},
		{"bonus capped", 300000, 100000, 100},
		{"half coverage", 50000, 100000, 40},
		{"just short stays below threshold", 99999, 100000, 79},
		{"partial rounds up", 33700, 100000, 27},
		{"partial rounds down", 34000, 100000, 27},
		{"rounding to threshold is capped", 99500, 100000, 79},
		{"no capital", 0, 100000, 0},
		{"surplus rounds", 100004, 100000, 80},
		{"surplus rounds up", 100600, 100000, 81},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := s.Score(tt.capital, tt.required)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.capital >= float64(tt.required), s.Feasible(got))
		})
	}
}

func TestFundingGap(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 25000.0, FundingGap(75000, 100000), 1e-9)
	assert.InDelta(t, 0.0, FundingGap(150000, 100000), 1e-9)
}

func TestActualRunway(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		capital   float64
		capex     int64
		burn      int64
		requested int
		want      float64
	}{
		{"remainder over burn", 50000, 17000, 3550, 12, 9.3},
		{"capex eats capital", 10000, 17000, 3550, 12, 0},
		{"capex equals capital", 17000, 17000, 3550, 12, 0},
		{"zero burn uses requested runway", 50000, 17000, 0, 18, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, ActualRunway(tt.capital, tt.capex, tt.burn, tt.requested), 1e-9)
		})
	}
}

func TestAssess(t *testing.T) {
	t.Parallel()
	s := New(DefaultConfig())

	p := lowRiskPlan()
	p.Capital = model.Amount(50000)
	breakdown := model.CostBreakdown{
		Capex: model.Capex{Dev: 2000, Setup: 15000, Total: 17000},
		Opex:  model.Opex{TotalMonthly: 3550, TotalRunway: 42600},
	}

	a := s.Assess(p, breakdown)
	assert.Equal(t, model.RiskLow, a.Risk)
	assert.Equal(t, int64(68540), a.RequiredCapital)
	assert.Equal(t, int64(8940), a.Buffer)
	assert.Equal(t, 58, a.Score) // round(50000 / 68540 x 80)
	assert.False(t, a.Feasible)
	assert.InDelta(t, 18540.0, a.FundingGap, 1e-9)
	assert.InDelta(t, 9.3, a.ActualRunwayMonths, 1e-9)
	assert.GreaterOrEqual(t, a.RequiredCapital, breakdown.Capex.Total+breakdown.Opex.TotalRunway)
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateConfig(DefaultConfig()))

	cfg := DefaultConfig()
	cfg.BaseBuffer = 0.3
	cfg.MaxBonus = 30
	cfg.MinRunwayMonths = 0
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "high_risk_buffer must be >= base_buffer")
	assert.Contains(t, err.Error(), "feasible_score + max_bonus")
	assert.Contains(t, err.Error(), "min_runway_months")
}

package scorer

import (
	"math"

	"github.com/sells-group/feasibility-cli/internal/model"
)

// Scorer assesses capital adequacy against a fixed Config.
type Scorer struct {
	cfg Config
}

// New creates a Scorer.
func New(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Risk is HIGH when any single condition holds: a crowded market with the
// shortest runway, a licensing or supply-chain challenge, or no MVP.
func (s *Scorer) Risk(p model.PlanInput) model.RiskLevel {
	switch {
	case p.Competition == model.CompetitionRedOcean && p.Runway.Months() == s.cfg.MinRunwayMonths:
		return model.RiskHigh
	case p.KeyChallenge == model.ChallengeLicensing, p.KeyChallenge == model.ChallengeSupplyChain:
		return model.RiskHigh
	case p.MVPReady == model.MVPNo:
		return model.RiskHigh
	default:
		return model.RiskLow
	}
}

// BufferRate returns the safety buffer fraction for a risk level.
func (s *Scorer) BufferRate(risk model.RiskLevel) float64 {
	if risk == model.RiskHigh {
		return s.cfg.HighRiskBuffer
	}
	return s.cfg.BaseBuffer
}

// RequiredCapital returns the rounded buffer and the rounded required capital
// for one-time cost plus burn over the requested runway.
func (s *Scorer) RequiredCapital(capexTotal, burn int64, runwayMonths int, risk model.RiskLevel) (buffer, required int64) {
	subtotal := float64(capexTotal + burn*int64(runwayMonths))
	buf := subtotal * s.BufferRate(risk)
	return model.RoundInt(buf), model.RoundInt(subtotal + buf)
}

// Score maps the capital ratio onto 0-100. Full coverage starts at the
// feasible score and earns a capped bonus for surplus. Partial coverage is
// rounded but capped one point under the feasible score.
func (s *Scorer) Score(capital float64, required int64) int {
	if required <= 0 {
		return int(s.cfg.FeasibleScore + s.cfg.MaxBonus)
	}
	ratio := capital / float64(required)
	if capital >= float64(required) {
		bonus := math.Min(s.cfg.MaxBonus, (ratio-1)*s.cfg.BonusPerSurplus)
		return int(model.Round(s.cfg.FeasibleScore + bonus))
	}
	partial := model.Round(math.Max(0, ratio*s.cfg.FeasibleScore))
	return int(math.Min(partial, s.cfg.FeasibleScore-1))
}

// Feasible reports whether a score clears the feasibility threshold.
func (s *Scorer) Feasible(score int) bool {
	return float64(score) >= s.cfg.FeasibleScore
}

// FundingGap is the shortfall between required and available capital.
func FundingGap(capital float64, required int64) float64 {
	return math.Max(0, float64(required)-capital)
}

// ActualRunway is the months the capital left after one-time cost sustains the
// burn, to one decimal. It is 0 when one-time cost consumes the capital. With
// no burn the plan is sustained for the requested runway.
func ActualRunway(capital float64, capexTotal, burn int64, requestedMonths int) float64 {
	remaining := capital - float64(capexTotal)
	if remaining <= 0 {
		return 0
	}
	if burn <= 0 {
		return float64(requestedMonths)
	}
	return model.Round1(remaining / float64(burn))
}

// Assess runs the full risk and scoring stage.
func (s *Scorer) Assess(p model.PlanInput, breakdown model.CostBreakdown) model.Assessment {
	capital := model.Value(p.Capital)
	months := p.Runway.Months()
	risk := s.Risk(p)
	buffer, required := s.RequiredCapital(breakdown.Capex.Total, breakdown.Opex.TotalMonthly, months, risk)
	score := s.Score(capital, required)

	return model.Assessment{
		Risk:               risk,
		RequiredCapital:    required,
		Buffer:             buffer,
		Score:              score,
		Feasible:           s.Feasible(score),
		FundingGap:         FundingGap(capital, required),
		ActualRunwayMonths: ActualRunway(capital, breakdown.Capex.Total, breakdown.Opex.TotalMonthly, months),
	}
}

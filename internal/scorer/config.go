// Package scorer classifies plan risk and scores capital adequacy.
package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Config holds the scoring thresholds. The buffer rates and the feasibility
// threshold are fixed empirical constants.
type Config struct {
	BaseBuffer      float64 `yaml:"base_buffer" mapstructure:"base_buffer"`
	HighRiskBuffer  float64 `yaml:"high_risk_buffer" mapstructure:"high_risk_buffer"`
	FeasibleScore   float64 `yaml:"feasible_score" mapstructure:"feasible_score"`
	MaxBonus        float64 `yaml:"max_bonus" mapstructure:"max_bonus"`
	BonusPerSurplus float64 `yaml:"bonus_per_surplus" mapstructure:"bonus_per_surplus"` // points per 1.0 of surplus ratio
	MinRunwayMonths int     `yaml:"min_runway_months" mapstructure:"min_runway_months"` // runway tier that counts as short in a crowded market
}

// DefaultConfig returns the standard scoring thresholds.
func DefaultConfig() Config {
	return Config{
		BaseBuffer:      0.15,
		HighRiskBuffer:  0.25,
		FeasibleScore:   80,
		MaxBonus:        20,
		BonusPerSurplus: 100,
		MinRunwayMonths: 6,
	}
}

// ValidateConfig checks that a Config is internally consistent.
func ValidateConfig(c Config) error {
	var errs []string

	buffers := map[string]float64{
		"base_buffer":      c.BaseBuffer,
		"high_risk_buffer": c.HighRiskBuffer,
	}
	for name, b := range buffers {
		if b < 0 || b >= 1 {
			errs = append(errs, fmt.Sprintf("%s must be in [0, 1)", name))
		}
	}
	if c.HighRiskBuffer < c.BaseBuffer {
		errs = append(errs, "high_risk_buffer must be >= base_buffer")
	}

	// Feasible score plus the full bonus must fit the 0-100 scale.
	if c.FeasibleScore <= 0 || c.FeasibleScore+c.MaxBonus > 100 {
		errs = append(errs, "feasible_score + max_bonus must be in (0, 100]")
	}
	if c.MaxBonus < 0 {
		errs = append(errs, "max_bonus must be >= 0")
	}
	if c.BonusPerSurplus < 0 {
		errs = append(errs, "bonus_per_surplus must be >= 0")
	}
	if c.MinRunwayMonths <= 0 {
		errs = append(errs, "min_runway_months must be > 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

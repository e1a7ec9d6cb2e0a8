// Package estimate projects first-year revenue and cash balance for a plan.
package estimate

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/feasibility-cli/internal/model"
)

// Periods is the fixed projection horizon. It does not follow the requested runway.
const Periods = 12

// Project builds the revenue target, net monthly profit, break-even units and
// the 12-period cash-flow table. Revenue ramps linearly and reaches the full
// target in the last period.
func Project(capexTotal, monthlyBurn int64, capital, price, volume float64) (model.Projection, error) {
	if price <= 0 {
		return model.Projection{}, eris.Errorf("estimate: unit price must be positive, got %g", price)
	}
	if volume < 0 {
		return model.Projection{}, eris.Errorf("estimate: target volume must be >= 0, got %g", volume)
	}
	if monthlyBurn < 0 {
		return model.Projection{}, eris.Errorf("estimate: monthly burn must be >= 0, got %d", monthlyBurn)
	}

	target := price * volume
	burn := float64(monthlyBurn)

	return model.Projection{
		RevenueMonthly:   target,
		NetProfitMonthly: target - burn,
		BreakEvenUnits:   BreakEvenUnits(monthlyBurn, price),
		CashFlow:         CashFlow(capital-float64(capexTotal), monthlyBurn, target),
	}, nil
}

// CashFlow returns exactly Periods entries starting from opening balance.
// Each balance is rounded before it is carried into the next period.
func CashFlow(opening float64, monthlyBurn int64, target float64) []model.CashFlowMonth {
	months := make([]model.CashFlowMonth, 0, Periods)
	balance := opening
	for i := 1; i <= Periods; i++ {
		ramp := float64(i) / Periods
		revenue := model.RoundInt(target * ramp)
		balance = model.Round(balance + float64(revenue) - float64(monthlyBurn))
		months = append(months, model.CashFlowMonth{
			Period:   i,
			Revenue:  revenue,
			Expenses: monthlyBurn,
			Balance:  int64(balance),
		})
	}
	return months
}

// BreakEvenUnits is the number of units per month whose revenue covers the
// burn. It is 0 when there is nothing to cover or no positive price.
func BreakEvenUnits(monthlyBurn int64, price float64) int64 {
	if monthlyBurn <= 0 || price <= 0 {
		return 0
	}
	return int64(math.Ceil(float64(monthlyBurn) / price))
}

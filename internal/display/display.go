// Package display converts base-unit (SAR) amounts for presentation.
package display

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/feasibility-cli/internal/model"
)

// Currency is a supported display currency.
type Currency string

const (
	SAR Currency = "SAR" // base unit
	USD Currency = "USD"
	EUR Currency = "EUR"
)

// Currencies lists the supported currencies in menu order.
var Currencies = []Currency{SAR, USD, EUR}

// ParseCurrency accepts an ISO code in any case. Empty means SAR.
func ParseCurrency(s string) (Currency, error) {
	if s == "" {
		return SAR, nil
	}
	unit, err := currency.ParseISO(strings.ToUpper(s))
	if err != nil {
		return "", eris.Wrapf(err, "display: parse currency %q", s)
	}
	c := Currency(unit.String())
	switch c {
	case SAR, USD, EUR:
		return c, nil
	}
	return "", eris.Errorf("display: unsupported currency %q", s)
}

// Symbol returns the short label shown next to amounts.
func (c Currency) Symbol() string {
	switch c {
	case USD:
		return "$"
	case EUR:
		return "€"
	default:
		return "SAR"
	}
}

// Rates holds SAR per one unit of each foreign currency.
type Rates struct {
	USD float64 `json:"usd" yaml:"usd"`
	EUR float64 `json:"eur" yaml:"eur"`
}

// DefaultRates returns the static peg rates.
func DefaultRates() Rates {
	return Rates{USD: 3.75, EUR: 4.0}
}

// Formatter converts and formats SAR amounts into one currency.
type Formatter struct {
	currency Currency
	rate     decimal.Decimal // SAR per unit
	printer  *message.Printer
}

// New creates a Formatter for c using rates.
func New(c Currency, rates Rates) (*Formatter, error) {
	var r float64
	switch c {
	case SAR:
		r = 1
	case USD:
		r = rates.USD
	case EUR:
		r = rates.EUR
	default:
		return nil, eris.Errorf("display: unsupported currency %q", c)
	}
	if r <= 0 {
		return nil, eris.Errorf("display: rate for %s must be > 0", c)
	}
	return &Formatter{
		currency: c,
		rate:     decimal.NewFromFloat(r),
		printer:  message.NewPrinter(language.English),
	}, nil
}

// Currency returns the target currency.
func (f *Formatter) Currency() Currency { return f.currency }

// Convert turns a SAR amount into the target currency, rounded to whole units.
func (f *Formatter) Convert(sar float64) decimal.Decimal {
	return decimal.NewFromFloat(sar).Div(f.rate).Round(0)
}

// Number formats a converted amount with digit grouping and no symbol.
func (f *Formatter) Number(sar float64) string {
	return f.printer.Sprintf("%d", f.Convert(sar).IntPart())
}

// Money formats a SAR amount in the target currency with its symbol.
func (f *Formatter) Money(sar float64) string {
	return f.Amount(f.Convert(sar))
}

// Amount formats an already converted amount with its symbol.
func (f *Formatter) Amount(d decimal.Decimal) string {
	n := f.printer.Sprintf("%d", d.Round(0).IntPart())
	if f.currency == SAR {
		return n + " SAR"
	}
	if strings.HasPrefix(n, "-") {
		return "-" + f.currency.Symbol() + n[1:]
	}
	return f.currency.Symbol() + n
}

// Investor equity bounds, in percent.
const (
	MinEquity     = 5
	MaxEquity     = 49
	DefaultEquity = 10
)

// ClampEquity keeps an equity share within MinEquity..MaxEquity. Zero picks
// DefaultEquity.
func ClampEquity(pct int) int {
	switch {
	case pct == 0:
		return DefaultEquity
	case pct < MinEquity:
		return MinEquity
	case pct > MaxEquity:
		return MaxEquity
	}
	return pct
}

// Valuation is the implied company value when an investor covers the funding
// gap in exchange for an equity share.
type Valuation struct {
	Currency      Currency        `json:"currency"`
	Gap           decimal.Decimal `json:"gap"`
	EquityPercent int             `json:"equity_percent"`
	Valuation     decimal.Decimal `json:"valuation"`
}

// Valuation computes gap / equity share in the target currency.
func (f *Formatter) Valuation(gapSAR float64, equityPct int) Valuation {
	eq := ClampEquity(equityPct)
	gap := decimal.NewFromFloat(gapSAR).Div(f.rate)
	val := gap.Div(decimal.NewFromInt(int64(eq)).Div(decimal.NewFromInt(100)))
	return Valuation{
		Currency:      f.currency,
		Gap:           gap.Round(0),
		EquityPercent: eq,
		Valuation:     val.Round(0),
	}
}

// Summary is the headline figures of a report in one currency.
type Summary struct {
	Currency        Currency       `json:"currency"`
	RequiredCapital string         `json:"required_capital"`
	UserCapital     string         `json:"user_capital"`
	BurnRateMonthly string         `json:"burn_rate_monthly"`
	CapexTotal      string         `json:"capex_total"`
	OpexRunway      string         `json:"opex_runway"`
	Buffer          string         `json:"buffer"`
	FundingGap      string         `json:"funding_gap"`
	RevenueMonthly  string         `json:"projected_revenue_monthly"`
	CashFlow        []CashFlowLine `json:"cash_flow"`
	Valuation       *Valuation     `json:"valuation,omitempty"`
}

// CashFlowLine is one formatted cash-flow period.
type CashFlowLine struct {
	Period  int    `json:"period"`
	Revenue string `json:"revenue"`
	Balance string `json:"balance"`
}

// Summarize formats the report's headline figures. A valuation is included
// only when there is a funding gap.
func (f *Formatter) Summarize(r *model.FeasibilityReport, equityPct int) Summary {
	s := Summary{
		Currency:        f.currency,
		RequiredCapital: f.Money(float64(r.RequiredCapital)),
		UserCapital:     f.Money(r.UserCapital),
		BurnRateMonthly: f.Money(float64(r.BurnRateMonthly)),
		CapexTotal:      f.Money(float64(r.Breakdown.Capex.Total)),
		OpexRunway:      f.Money(float64(r.Breakdown.Opex.TotalRunway)),
		Buffer:          f.Money(float64(r.Breakdown.Buffer)),
		FundingGap:      f.Money(r.FundingGap),
		RevenueMonthly:  f.Money(r.ProjectedRevenue),
		CashFlow:        make([]CashFlowLine, 0, len(r.CashFlow)),
	}
	for _, m := range r.CashFlow {
		s.CashFlow = append(s.CashFlow, CashFlowLine{
			Period:  m.Period,
			Revenue: f.Money(float64(m.Revenue)),
			Balance: f.Money(float64(m.Balance)),
		})
	}
	if r.FundingGap > 0 {
		v := f.Valuation(r.FundingGap, equityPct)
		s.Valuation = &v
	}
	return s
}

package cost

import (
	"github.com/sells-group/feasibility-cli/internal/model"
)

// Tables holds the fixed cost constants, keyed by plan enumerations.
type Tables struct {
	AgencyDev         map[model.Category]float64      `json:"agency_dev" yaml:"agency_dev" mapstructure:"agency_dev"`
	InternalDev       InternalDevRate                 `json:"internal_dev" yaml:"internal_dev" mapstructure:"internal_dev"`
	FullBuildMul      float64                         `json:"full_build_mul" yaml:"full_build_mul" mapstructure:"full_build_mul"`
	SetupMisc         float64                         `json:"setup_misc" yaml:"setup_misc" mapstructure:"setup_misc"`
	LegalRegistration float64                         `json:"legal_registration" yaml:"legal_registration" mapstructure:"legal_registration"`
	StaffSalary       map[model.StaffCount]float64    `json:"staff_salary" yaml:"staff_salary" mapstructure:"staff_salary"`
	TechSalary        float64                         `json:"tech_salary" yaml:"tech_salary" mapstructure:"tech_salary"`
	Rent              map[model.OfficeType]float64    `json:"rent" yaml:"rent" mapstructure:"rent"`
	Marketing         map[model.MarketingType]float64 `json:"marketing" yaml:"marketing" mapstructure:"marketing"`
	MarketingAdjust   MarketingAdjust                 `json:"marketing_adjust" yaml:"marketing_adjust" mapstructure:"marketing_adjust"`
	CityMultiplier    map[model.City]float64          `json:"city_multiplier" yaml:"city_multiplier" mapstructure:"city_multiplier"`
}

// InternalDevRate is the in-house development setup cost.
type InternalDevRate struct {
	FounderDeveloper float64 `json:"founder_developer" yaml:"founder_developer" mapstructure:"founder_developer"`
	LeadHire         float64 `json:"lead_hire" yaml:"lead_hire" mapstructure:"lead_hire"`
}

// MarketingAdjust holds the additive marketing multiplier terms.
type MarketingAdjust struct {
	RedOcean       float64 `json:"red_ocean" yaml:"red_ocean" mapstructure:"red_ocean"`
	BlueOcean      float64 `json:"blue_ocean" yaml:"blue_ocean" mapstructure:"blue_ocean"`
	B2C            float64 `json:"b2c" yaml:"b2c" mapstructure:"b2c"`
	FounderSavings float64 `json:"founder_savings" yaml:"founder_savings" mapstructure:"founder_savings"` // subtracted for a marketer founder
	Floor          float64 `json:"floor" yaml:"floor" mapstructure:"floor"`
}

// Monthly is the unrounded-input, rounded-output monthly operating cost.
type Monthly struct {
	Salaries  int64
	Rent      int64
	Marketing int64
	Burn      int64
}

// Calculator computes startup and operating cost for a plan.
type Calculator struct {
	tables Tables
}

// NewCalculator creates a Calculator with the given tables.
func NewCalculator(tables Tables) *Calculator {
	return &Calculator{tables: tables}
}

// CityMultiplier returns the location cost factor for city.
func (c *Calculator) CityMultiplier(city model.City) float64 {
	return c.tables.CityMultiplier[city]
}

// Dev computes the one-time development cost.
func (c *Calculator) Dev(p model.PlanInput) float64 {
	var dev float64
	if p.Team == model.TeamAgency {
		dev = c.tables.AgencyDev[p.Category]
	} else if p.FounderRole == model.FounderDeveloper {
		dev = c.tables.InternalDev.FounderDeveloper
	} else {
		dev = c.tables.InternalDev.LeadHire
	}

	if p.MVPReady == model.MVPNo {
		dev *= c.tables.FullBuildMul
	}
	return dev
}

// Setup computes the one-time setup cost.
func (c *Calculator) Setup(legal model.LegalStatus) float64 {
	setup := c.tables.SetupMisc
	if legal == model.LegalYes || legal == model.LegalUnsure {
		setup += c.tables.LegalRegistration
	}
	return setup
}

// Capex computes the one-time cost block.
func (c *Calculator) Capex(p model.PlanInput) model.Capex {
	dev := model.RoundInt(c.Dev(p))
	setup := model.RoundInt(c.Setup(p.Legal))
	return model.Capex{Dev: dev, Setup: setup, Total: dev + setup}
}

// MarketingMultiplier computes the clamped marketing spend factor.
func (c *Calculator) MarketingMultiplier(p model.PlanInput) float64 {
	adj := c.tables.MarketingAdjust
	mul := 1.0
	if p.Competition == model.CompetitionRedOcean {
		mul += adj.RedOcean
	}
	if p.Competition == model.CompetitionBlueOcean {
		mul += adj.BlueOcean
	}
	if p.Audience == model.AudienceB2C {
		mul += adj.B2C
	}
	if p.FounderRole == model.FounderMarketer {
		mul -= adj.FounderSavings
	}
	return max(adj.Floor, mul)
}

// Monthly computes the recurring monthly cost. Salaries and rent are carried
// unrounded into the burn and rounded only for the breakdown; marketing is
// rounded before it is summed.
func (c *Calculator) Monthly(p model.PlanInput) Monthly {
	cityMul := c.tables.CityMultiplier[p.City]

	salaries := c.tables.StaffSalary[p.Staff]
	if p.Team == model.TeamInternal && p.FounderRole != model.FounderDeveloper {
		salaries += c.tables.TechSalary
	}
	salaries *= cityMul

	rent := c.tables.Rent[p.Office]
	if p.Office != model.OfficeRemote {
		rent *= cityMul
	}

	marketing := model.Round(c.tables.Marketing[p.Marketing] * c.MarketingMultiplier(p))

	return Monthly{
		Salaries:  model.RoundInt(salaries),
		Rent:      model.RoundInt(rent),
		Marketing: int64(marketing),
		Burn:      model.RoundInt(salaries + rent + marketing),
	}
}

// Breakdown computes the cost breakdown for a plan. Buffer is left at zero;
// it depends on the risk assessment.
func (c *Calculator) Breakdown(p model.PlanInput) model.CostBreakdown {
	m := c.Monthly(p)
	return model.CostBreakdown{
		Capex: c.Capex(p),
		Opex: model.Opex{
			Salaries:     m.Salaries,
			Rent:         m.Rent,
			Marketing:    m.Marketing,
			TotalMonthly: m.Burn,
			TotalRunway:  m.Burn * int64(p.Runway.Months()),
		},
	}
}

// DefaultTables returns the standard cost constants in SAR.
func DefaultTables() Tables {
	return Tables{
		AgencyDev: map[model.Category]float64{
			model.CategoryMobileApp:       150000,
			model.CategoryWebsite:         40000,
			model.CategoryDigitalService:  80000,
			model.CategoryPhysicalProduct: 100000,
			model.CategoryEcommerce:       60000,
			model.CategoryOther:           50000,
		},
		InternalDev:       InternalDevRate{FounderDeveloper: 2000, LeadHire: 5000},
		FullBuildMul:      2.5,
		SetupMisc:         15000,
		LegalRegistration: 2500,
		StaffSalary: map[model.StaffCount]float64{
			model.StaffZero:   3000,
			model.StaffSmall:  12000,
			model.StaffMedium: 35000,
			model.StaffLarge:  60000,
		},
		TechSalary: 15000,
		Rent: map[model.OfficeType]float64{
			model.OfficeRemote:    0,
			model.OfficeCoworking: 2000,
			model.OfficePrivate:   8000,
			model.OfficeWarehouse: 15000,
		},
		Marketing: map[model.MarketingType]float64{
			model.MarketingOrganic: 1000,
			model.MarketingPaidAds: 5000,
			model.MarketingMega:    25000,
		},
		MarketingAdjust: MarketingAdjust{
			RedOcean:       0.5,
			BlueOcean:      0.2,
			B2C:            0.3,
			FounderSavings: 0.3,
			Floor:          0.5,
		},
		CityMultiplier: map[model.City]float64{
			model.CityRiyadh: 1.25,
			model.CityJeddah: 1.10,
			model.CityDammam: 1.05,
			model.CityOther:  0.85,
		},
	}
}

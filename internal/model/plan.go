package model

// Category is the kind of product the plan launches.
type Category string

const (
	CategoryMobileApp       Category = "MOBILE_APP"
	CategoryWebsite         Category = "WEBSITE"
	CategoryDigitalService  Category = "DIGITAL_SERVICE"
	CategoryPhysicalProduct Category = "PHYSICAL_PRODUCT"
	CategoryEcommerce       Category = "ECOMMERCE"
	CategoryOther           Category = "OTHER"
)

// Categories lists every Category in catalog order.
var Categories = []Category{
	CategoryMobileApp, CategoryWebsite, CategoryDigitalService,
	CategoryPhysicalProduct, CategoryEcommerce, CategoryOther,
}

// TeamStatus says who builds the product.
type TeamStatus string

const (
	TeamInternal TeamStatus = "INTERNAL" // built in-house
	TeamAgency   TeamStatus = "AGENCY"   // contracted out
)

// TeamStatuses lists every TeamStatus in catalog order.
var TeamStatuses = []TeamStatus{TeamInternal, TeamAgency}

// LegalStatus is whether the business needs commercial registration.
type LegalStatus string

const (
	LegalYes    LegalStatus = "YES"
	LegalNo     LegalStatus = "NO"
	LegalUnsure LegalStatus = "UNSURE"
)

// LegalStatuses lists every LegalStatus in catalog order.
var LegalStatuses = []LegalStatus{LegalYes, LegalNo, LegalUnsure}

// GeoScope is the geographic reach of the launch.
type GeoScope string

const (
	ScopeCity    GeoScope = "CITY"
	ScopeKingdom GeoScope = "KINGDOM"
)

// GeoScopes lists every GeoScope in catalog order.
var GeoScopes = []GeoScope{ScopeCity, ScopeKingdom}

// Runway is the requested number of months of covered operating cost.
type Runway string

const (
	Runway6  Runway = "6"
	Runway12 Runway = "12"
	Runway18 Runway = "18"
)

// Runways lists every Runway in catalog order.
var Runways = []Runway{Runway6, Runway12, Runway18}

// Months returns the runway length in months, or 0 for an unknown value.
func (r Runway) Months() int {
	switch r {
	case Runway6:
		return 6
	case Runway12:
		return 12
	case Runway18:
		return 18
	default:
		return 0
	}
}

// StaffCount is the non-technical staffing tier.
type StaffCount string

const (
	StaffZero   StaffCount = "ZERO"   // founder only
	StaffSmall  StaffCount = "SMALL"  // 1-2
	StaffMedium StaffCount = "MEDIUM" // 3-5
	StaffLarge  StaffCount = "LARGE"  // more than 5
)

// StaffCounts lists every StaffCount in catalog order.
var StaffCounts = []StaffCount{StaffZero, StaffSmall, StaffMedium, StaffLarge}

// OfficeType is the kind of premises the business rents.
type OfficeType string

const (
	OfficeRemote    OfficeType = "REMOTE"
	OfficeCoworking OfficeType = "COWORKING"
	OfficePrivate   OfficeType = "OFFICE"
	OfficeWarehouse OfficeType = "WAREHOUSE"
)

// OfficeTypes lists every OfficeType in catalog order.
var OfficeTypes = []OfficeType{OfficeRemote, OfficeCoworking, OfficePrivate, OfficeWarehouse}

// MarketingType is the marketing spend tier.
type MarketingType string

const (
	MarketingOrganic MarketingType = "ORGANIC"
	MarketingPaidAds MarketingType = "PAID_ADS"
	MarketingMega    MarketingType = "MEGA"
)

// MarketingTypes lists every MarketingType in catalog order.
var MarketingTypes = []MarketingType{MarketingOrganic, MarketingPaidAds, MarketingMega}

// BusinessModel is how the business charges customers.
type BusinessModel string

const (
	ModelDirectSale   BusinessModel = "DIRECT_SALE"
	ModelSubscription BusinessModel = "SUBSCRIPTION"
	ModelCommission   BusinessModel = "COMMISSION"
	ModelAds          BusinessModel = "ADS"
)

// BusinessModels lists every BusinessModel in catalog order.
var BusinessModels = []BusinessModel{ModelDirectSale, ModelSubscription, ModelCommission, ModelAds}

// Audience is the customer segment.
type Audience string

const (
	AudienceB2C Audience = "B2C"
	AudienceB2B Audience = "B2B"
	AudienceB2G Audience = "B2G"
)

// Audiences lists every Audience in catalog order.
var Audiences = []Audience{AudienceB2C, AudienceB2B, AudienceB2G}

// Competition is how crowded the target market is.
type Competition string

const (
	CompetitionBlueOcean Competition = "BLUE_OCEAN"
	CompetitionModerate  Competition = "MODERATE"
	CompetitionRedOcean  Competition = "RED_OCEAN"
)

// Competitions lists every Competition in catalog order.
var Competitions = []Competition{CompetitionBlueOcean, CompetitionModerate, CompetitionRedOcean}

// FounderRole is what the founder personally does in the business.
type FounderRole string

const (
	FounderManager   FounderRole = "MANAGER"
	FounderMarketer  FounderRole = "MARKETER"
	FounderDeveloper FounderRole = "DEVELOPER"
)

// FounderRoles lists every FounderRole in catalog order.
var FounderRoles = []FounderRole{FounderManager, FounderMarketer, FounderDeveloper}

// City is the operating location.
type City string

const (
	CityRiyadh City = "RIYADH"
	CityJeddah City = "JEDDAH"
	CityDammam City = "DAMMAM"
	CityOther  City = "OTHER"
)

// Cities lists every City in catalog order.
var Cities = []City{CityRiyadh, CityJeddah, CityDammam, CityOther}

// ValueProposition is the main reason customers would pick the product.
type ValueProposition string

const (
	ValueSpeed   ValueProposition = "SPEED"
	ValuePrice   ValueProposition = "PRICE"
	ValueQuality ValueProposition = "QUALITY"
	ValueUnique  ValueProposition = "UNIQUE"
)

// ValuePropositions lists every ValueProposition in catalog order.
var ValuePropositions = []ValueProposition{ValueSpeed, ValuePrice, ValueQuality, ValueUnique}

// MVPReadiness is whether the plan launches a minimum viable product first.
type MVPReadiness string

const (
	MVPYes MVPReadiness = "YES"
	MVPNo  MVPReadiness = "NO" // full-feature launch
)

// MVPReadinesses lists every MVPReadiness in catalog order.
var MVPReadinesses = []MVPReadiness{MVPYes, MVPNo}

// KeyChallenge is the risk the founder considers most pressing.
type KeyChallenge string

const (
	ChallengeCompetition KeyChallenge = "COMPETITION"
	ChallengeLicensing   KeyChallenge = "LICENSING"
	ChallengeTalent      KeyChallenge = "TALENT"
	ChallengeSupplyChain KeyChallenge = "SUPPLY_CHAIN"
)

// KeyChallenges lists every KeyChallenge in catalog order.
var KeyChallenges = []KeyChallenge{ChallengeCompetition, ChallengeLicensing, ChallengeTalent, ChallengeSupplyChain}

// PlanInput is the full set of answers for one evaluation.
// Numeric fields are pointers so an unanswered field is distinguishable from zero.
type PlanInput struct {
	Category      Category         `json:"category" yaml:"category" mapstructure:"category"`
	Capital       *float64         `json:"capital" yaml:"capital" mapstructure:"capital"`
	Team          TeamStatus       `json:"team" yaml:"team" mapstructure:"team"`
	Legal         LegalStatus      `json:"legal" yaml:"legal" mapstructure:"legal"`
	Scope         GeoScope         `json:"scope,omitempty" yaml:"scope,omitempty" mapstructure:"scope"`
	Runway        Runway           `json:"runway" yaml:"runway" mapstructure:"runway"`
	Staff         StaffCount       `json:"staff" yaml:"staff" mapstructure:"staff"`
	Office        OfficeType       `json:"office" yaml:"office" mapstructure:"office"`
	Marketing     MarketingType    `json:"marketing" yaml:"marketing" mapstructure:"marketing"`
	BusinessModel BusinessModel    `json:"business_model" yaml:"business_model" mapstructure:"business_model"`
	Audience      Audience         `json:"audience" yaml:"audience" mapstructure:"audience"`
	Competition   Competition      `json:"competition" yaml:"competition" mapstructure:"competition"`
	FounderRole   FounderRole      `json:"founder_role" yaml:"founder_role" mapstructure:"founder_role"`
	City          City             `json:"city" yaml:"city" mapstructure:"city"`
	UnitPrice     *float64         `json:"unit_price" yaml:"unit_price" mapstructure:"unit_price"`
	TargetVolume  *float64         `json:"target_volume" yaml:"target_volume" mapstructure:"target_volume"`
	ValueProp     ValueProposition `json:"value_prop" yaml:"value_prop" mapstructure:"value_prop"`
	MVPReady      MVPReadiness     `json:"mvp_ready" yaml:"mvp_ready" mapstructure:"mvp_ready"`
	KeyChallenge  KeyChallenge     `json:"key_challenge" yaml:"key_challenge" mapstructure:"key_challenge"`
}

// Amount returns a pointer to v, for filling PlanInput numeric fields.
func Amount(v float64) *float64 {
	return &v
}

// Value dereferences a numeric field, returning 0 when unset.
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

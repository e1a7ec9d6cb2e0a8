// Package catalog describes the questionnaire: every field, its prompt and
// the fixed options a planner can choose from.
package catalog

import (
	"github.com/sells-group/feasibility-cli/internal/model"
)

// Kinds of field.
const (
	KindChoice = "choice"
	KindAmount = "amount"
)

// Option is one selectable answer.
type Option struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Field is one question of the questionnaire.
type Field struct {
	Name     string   `json:"name" yaml:"name"`
	Question string   `json:"question" yaml:"question"`
	Kind     string   `json:"kind" yaml:"kind"`
	Optional bool     `json:"optional,omitempty" yaml:"optional,omitempty"`
	Options  []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// Label returns the label for id, or id itself when unknown.
func (f Field) Label(id string) string {
	for _, o := range f.Options {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

func choices[T ~string](ids []T, labels map[T]string) []Option {
	out := make([]Option, len(ids))
	for i, id := range ids {
		out[i] = Option{ID: string(id), Label: labels[id]}
	}
	return out
}

var fields = []Field{
	{Name: "category", Question: "What are you building?", Kind: KindChoice, Options: choices(model.Categories, map[model.Category]string{
		model.CategoryMobileApp:       "Mobile app",
		model.CategoryWebsite:         "Website",
		model.CategoryDigitalService:  "Digital service",
		model.CategoryPhysicalProduct: "Physical product",
		model.CategoryEcommerce:       "E-commerce platform",
		model.CategoryOther:           "Other",
	})},
	{Name: "capital", Question: "How much capital do you have (SAR)?", Kind: KindAmount},
	{Name: "team", Question: "Do you have a technical team?", Kind: KindChoice, Options: choices(model.TeamStatuses, map[model.TeamStatus]string{
		model.TeamInternal: "Yes, we build in-house",
		model.TeamAgency:   "No, we hire an agency or freelancers",
	})},
	{Name: "legal", Question: "Is the commercial registration done?", Kind: KindChoice, Options: choices(model.LegalStatuses, map[model.LegalStatus]string{
		model.LegalYes:    "Yes",
		model.LegalNo:     "No",
		model.LegalUnsure: "Not sure (budget a reserve)",
	})},
	{Name: "scope", Question: "Where will you operate?", Kind: KindChoice, Optional: true, Options: choices(model.GeoScopes, map[model.GeoScope]string{
		model.ScopeCity:    "One city or region",
		model.ScopeKingdom: "The whole Kingdom",
	})},
	{Name: "runway", Question: "How many months should the capital last?", Kind: KindChoice, Options: choices(model.Runways, map[model.Runway]string{
		model.Runway6:  "6 months (minimum)",
		model.Runway12: "12 months (recommended)",
		model.Runway18: "18 months or more (safe)",
	})},
	{Name: "staff", Question: "How many employees besides you?", Kind: KindChoice, Options: choices(model.StaffCounts, map[model.StaffCount]string{
		model.StaffZero:   "Nobody (just me)",
		model.StaffSmall:  "1 to 2 employees",
		model.StaffMedium: "3 to 5 employees",
		model.StaffLarge:  "More than 5",
	})},
	{Name: "office", Question: "Do you need premises?", Kind: KindChoice, Options: choices(model.OfficeTypes, map[model.OfficeType]string{
		model.OfficeRemote:    "No (remote or from home)",
		model.OfficeCoworking: "Co-working space",
		model.OfficePrivate:   "Private office or showroom",
		model.OfficeWarehouse: "Warehouse and storage",
	})},
	{Name: "marketing", Question: "How will you market?", Kind: KindChoice, Options: choices(model.MarketingTypes, map[model.MarketingType]string{
		model.MarketingOrganic: "Relationships and organic growth",
		model.MarketingPaidAds: "Social media ads",
		model.MarketingMega:    "Large campaigns and influencers",
	})},
	{Name: "business_model", Question: "How do you make money?", Kind: KindChoice, Options: choices(model.BusinessModels, map[model.BusinessModel]string{
		model.ModelDirectSale:   "Direct sale (product or service)",
		model.ModelSubscription: "Recurring subscriptions",
		model.ModelCommission:   "Commission (marketplace)",
		model.ModelAds:          "Advertising (free app)",
	})},
	{Name: "audience", Question: "Who are your customers?", Kind: KindChoice, Options: choices(model.Audiences, map[model.Audience]string{
		model.AudienceB2C: "Individuals (B2C)",
		model.AudienceB2B: "Businesses (B2B)",
		model.AudienceB2G: "Government (B2G)",
	})},
	{Name: "competition", Question: "How crowded is the market?", Kind: KindChoice, Options: choices(model.Competitions, map[model.Competition]string{
		model.CompetitionBlueOcean: "A brand-new idea",
		model.CompetitionModerate:  "Moderate competition",
		model.CompetitionRedOcean:  "A very crowded market",
	})},
	{Name: "founder_role", Question: "What is your own role?", Kind: KindChoice, Options: choices(model.FounderRoles, map[model.FounderRole]string{
		model.FounderManager:   "Management only",
		model.FounderMarketer:  "I do marketing and sales",
		model.FounderDeveloper: "I am the developer",
	})},
	{Name: "city", Question: "Which city?", Kind: KindChoice, Options: choices(model.Cities, map[model.City]string{
		model.CityRiyadh: "Riyadh",
		model.CityJeddah: "Jeddah",
		model.CityDammam: "Dammam / Khobar",
		model.CityOther:  "Other cities",
	})},
	{Name: "unit_price", Question: "Average price per unit or subscription (SAR)?", Kind: KindAmount},
	{Name: "target_volume", Question: "Expected monthly sales at full speed (units)?", Kind: KindAmount},
	{Name: "value_prop", Question: "Why will customers pick you?", Kind: KindChoice, Options: choices(model.ValuePropositions, map[model.ValueProposition]string{
		model.ValueSpeed:   "Speed / saves time",
		model.ValuePrice:   "Lower price / saves money",
		model.ValueQuality: "Higher quality / premium",
		model.ValueUnique:  "An innovative solution nobody offers",
	})},
	{Name: "mvp_ready", Question: "Will you launch with a minimum viable product?", Kind: KindChoice, Options: choices(model.MVPReadinesses, map[model.MVPReadiness]string{
		model.MVPYes: "Yes, a trial version (MVP) first",
		model.MVPNo:  "No, a full product from day one",
	})},
	{Name: "key_challenge", Question: "What worries you most?", Kind: KindChoice, Options: choices(model.KeyChallenges, map[model.KeyChallenge]string{
		model.ChallengeCompetition: "Strong competition",
		model.ChallengeLicensing:   "Hard-to-get licenses",
		model.ChallengeTalent:      "Hiring talent",
		model.ChallengeSupplyChain: "Rising supply costs",
	})},
}

// Fields returns every questionnaire field in wizard order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Lookup finds a field by its plan key.
func Lookup(name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Label returns the label of option id in field name, or id when unknown.
func Label(name, id string) string {
	f, ok := Lookup(name)
	if !ok {
		return id
	}
	return f.Label(id)
}

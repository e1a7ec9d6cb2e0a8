package model

import "slices"

func (v Category) Valid() bool         { return slices.Contains(Categories, v) }
func (v TeamStatus) Valid() bool       { return slices.Contains(TeamStatuses, v) }
func (v LegalStatus) Valid() bool      { return slices.Contains(LegalStatuses, v) }
func (v GeoScope) Valid() bool         { return slices.Contains(GeoScopes, v) }
func (v Runway) Valid() bool           { return slices.Contains(Runways, v) }
func (v StaffCount) Valid() bool       { return slices.Contains(StaffCounts, v) }
func (v OfficeType) Valid() bool       { return slices.Contains(OfficeTypes, v) }
func (v MarketingType) Valid() bool    { return slices.Contains(MarketingTypes, v) }
func (v BusinessModel) Valid() bool    { return slices.Contains(BusinessModels, v) }
func (v Audience) Valid() bool         { return slices.Contains(Audiences, v) }
func (v Competition) Valid() bool      { return slices.Contains(Competitions, v) }
func (v FounderRole) Valid() bool      { return slices.Contains(FounderRoles, v) }
func (v City) Valid() bool             { return slices.Contains(Cities, v) }
func (v ValueProposition) Valid() bool { return slices.Contains(ValuePropositions, v) }
func (v MVPReadiness) Valid() bool     { return slices.Contains(MVPReadinesses, v) }
func (v KeyChallenge) Valid() bool     { return slices.Contains(KeyChallenges, v) }

// Field pairs a plan field name with its raw value and validity, in declaration order.
type Field struct {
	Name  string
	Value string
	Set   bool
	Valid bool
}

// EnumFields returns every categorical field of the plan. Scope is reported
// as set only when present, since it is optional.
func (p PlanInput) EnumFields() []Field {
	f := func(name, value string, valid bool) Field {
		return Field{Name: name, Value: value, Set: value != "", Valid: valid}
	}
	return []Field{
		f("category", string(p.Category), p.Category.Valid()),
		f("team", string(p.Team), p.Team.Valid()),
		f("legal", string(p.Legal), p.Legal.Valid()),
		f("scope", string(p.Scope), p.Scope == "" || p.Scope.Valid()),
		f("runway", string(p.Runway), p.Runway.Valid()),
		f("staff", string(p.Staff), p.Staff.Valid()),
		f("office", string(p.Office), p.Office.Valid()),
		f("marketing", string(p.Marketing), p.Marketing.Valid()),
		f("business_model", string(p.BusinessModel), p.BusinessModel.Valid()),
		f("audience", string(p.Audience), p.Audience.Valid()),
		f("competition", string(p.Competition), p.Competition.Valid()),
		f("founder_role", string(p.FounderRole), p.FounderRole.Valid()),
		f("city", string(p.City), p.City.Valid()),
		f("value_prop", string(p.ValueProp), p.ValueProp.Valid()),
		f("mvp_ready", string(p.MVPReady), p.MVPReady.Valid()),
		f("key_challenge", string(p.KeyChallenge), p.KeyChallenge.Valid()),
	}
}

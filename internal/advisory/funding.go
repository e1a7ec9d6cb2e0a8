package advisory

import (
	"github.com/sells-group/feasibility-cli/internal/model"
)

// FundingGroup is a family of funding sources.
type FundingGroup string

const (
	FundingTech FundingGroup = "TECH"
	FundingSME  FundingGroup = "SME"
	FundingGov  FundingGroup = "GOV"
)

// FundingSources is the fixed catalog of funding programs by group.
var FundingSources = map[FundingGroup][]model.FundingRecommendation{
	FundingTech: {
		{
			Name:        "Saudi Venture Capital (SVC)",
			Description: "Invests in venture funds and startups.",
			URL:         "https://svc.com.sa",
		},
		{
			Name:        "Wa'ed Ventures (Aramco)",
			Description: "Supports entrepreneurship and innovation.",
			URL:         "https://waed.net",
		},
	},
	FundingSME: {
		{
			Name:        "Social Development Bank",
			Description: "Concessional financing for small projects.",
			URL:         "https://www.sdb.gov.sa",
		},
		{
			Name:        "Kafalah Program",
			Description: "Guarantees financing for small enterprises.",
			URL:         "https://kafalah.gov.sa",
		},
	},
	FundingGov: {
		{
			Name:        "Taqnia",
			Description: "Invests in technology transfer.",
			URL:         "https://taqnia.com",
		},
	},
}

// FundingGroups selects the funding families for a plan. The branches are
// exclusive and evaluated in priority order.
func FundingGroups(p model.PlanInput) []FundingGroup {
	switch {
	case p.Category == model.CategoryMobileApp || p.Category == model.CategoryDigitalService:
		return []FundingGroup{FundingTech}
	case p.Audience == model.AudienceB2G:
		return []FundingGroup{FundingGov, FundingSME}
	default:
		return []FundingGroup{FundingSME}
	}
}

// Funding returns the recommended sources for a plan, copied so callers may
// not alter the catalog.
func Funding(p model.PlanInput) []model.FundingRecommendation {
	var out []model.FundingRecommendation
	for _, g := range FundingGroups(p) {
		out = append(out, FundingSources[g]...)
	}
	return out
}

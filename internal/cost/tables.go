package cost

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/feasibility-cli/internal/model"
)

// ValidateTables checks that every enum-keyed table covers every value of its
// enumeration and that scalar rates are usable.
func ValidateTables(t Tables) error {
	var errs []string

	errs = append(errs, missingKeys("agency_dev", t.AgencyDev, model.Categories)...)
	errs = append(errs, missingKeys("staff_salary", t.StaffSalary, model.StaffCounts)...)
	errs = append(errs, missingKeys("rent", t.Rent, model.OfficeTypes)...)
	errs = append(errs, missingKeys("marketing", t.Marketing, model.MarketingTypes)...)
	errs = append(errs, missingKeys("city_multiplier", t.CityMultiplier, model.Cities)...)

	for _, city := range model.Cities {
		if mul, ok := t.CityMultiplier[city]; ok && mul <= 0 {
			errs = append(errs, fmt.Sprintf("city_multiplier[%s] must be > 0", city))
		}
	}
	if t.FullBuildMul < 1 {
		errs = append(errs, "full_build_mul must be >= 1")
	}
	if t.MarketingAdjust.Floor <= 0 {
		errs = append(errs, "marketing_adjust.floor must be > 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("cost: table validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func missingKeys[K ~string](name string, table map[K]float64, keys []K) []string {
	var errs []string
	for _, k := range keys {
		if _, ok := table[k]; !ok {
			errs = append(errs, fmt.Sprintf("%s missing %s", name, k))
		}
	}
	return errs
}

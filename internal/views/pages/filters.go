package pages

import (
	"net/url"
	"strconv"
	"strings"

	"formulakb/internal/catalog"
	"formulakb/internal/kb"
	"formulakb/internal/recommend"
)

// AllOption is the leading selector value that disables a filter.
const AllOption = kb.All

// Query parameter names used by the dashboard form.
const (
	ParamCategory    = "category"
	ParamProductType = "product_type"
	ParamBrand       = "brand"
	ParamIDs         = "ids"
	ParamTarget      = "target"
	ParamSulfateFree = "sulfate_free"
	ParamMild        = "mild"
	ParamHighFoam    = "high_foam"
)

// FilterFromQuery extracts the browse selections.
func FilterFromQuery(q url.Values) kb.Filter {
	return kb.Filter{
		Category:    strings.TrimSpace(q.Get(ParamCategory)),
		ProductType: strings.TrimSpace(q.Get(ParamProductType)),
		Brand:       strings.TrimSpace(q.Get(ParamBrand)),
	}.Normalized()
}

// PreferencesFromQuery reads the recommender toggles. All of them start off.
func PreferencesFromQuery(q url.Values) recommend.Preferences {
	return recommend.Preferences{
		SulfateFree: checked(q.Get(ParamSulfateFree)),
		Mild:        checked(q.Get(ParamMild)),
		HighFoam:    checked(q.Get(ParamHighFoam)),
	}
}

// TargetFromQuery returns the recommender target, defaulting to the first
// registered one.
func TargetFromQuery(q url.Values, targets []string) string {
	target := strings.TrimSpace(q.Get(ParamTarget))
	if target != "" {
		return target
	}
	if len(targets) > 0 {
		return targets[0]
	}
	return catalog.DefaultProductType
}

// IDsFromQuery collects the selected formulation ids, dropping duplicates
// and values that are not positive integers.
func IDsFromQuery(q url.Values) []int64 {
	var ids []int64
	seen := make(map[int64]struct{})
	for _, raw := range q[ParamIDs] {
		id := ParseID(raw)
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// ParseID extracts a positive id from the provided string, returning zero on failure.
func ParseID(value string) int64 {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || parsed <= 0 {
		return 0
	}
	return parsed
}

func checked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

func selectedOrAll(value string) string {
	if value == "" {
		return AllOption
	}
	return value
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

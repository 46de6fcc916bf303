package search

import "strings"

const (
	ParamQuery     = "query"
	ParamPrice     = "price"
	ParamScale     = "scale"
	ParamWorldView = "worldview"
	ParamLocation  = "location"
	ParamPurpose   = "purpose"
	ParamDate      = "date"
	ParamSort      = "sort"

	// Older links used these names.
	ParamWorldViewLegacy = "world_view"
	ParamDateLegacy      = "date_range"
)

type Sort string

const (
	SortCreatedDesc Sort = "created_desc"
	SortPriceAsc    Sort = "price_asc"
	SortPriceDesc   Sort = "price_desc"
)

var SortOptions = []struct {
	Value Sort
	Label string
}{
	{Value: SortCreatedDesc, Label: "新着順"},
	{Value: SortPriceAsc, Label: "料金が安い順"},
	{Value: SortPriceDesc, Label: "料金が高い順"},
}

// ParseSort falls back to SortCreatedDesc for anything it does not know.
func ParseSort(v string) Sort {
	switch Sort(strings.TrimSpace(v)) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortCreatedDesc
	}
}

// Params is the canonical filter parameter set. Legacy parameter names are
// folded in by ParamsFromLookup and never appear past this point.
type Params struct {
	Query     string
	Price     string
	Scale     string
	WorldView string
	Location  string
	Purpose   string
	Date      string
	Sort      string
}

// ParamsFromLookup reads filter parameters through get, which returns "" for
// absent keys. The canonical name wins over its legacy alias.
func ParamsFromLookup(get func(key string) string) Params {
	return Params{
		Query:     strings.TrimSpace(get(ParamQuery)),
		Price:     strings.TrimSpace(get(ParamPrice)),
		Scale:     strings.TrimSpace(get(ParamScale)),
		WorldView: firstNonBlank(get(ParamWorldView), get(ParamWorldViewLegacy)),
		Location:  strings.TrimSpace(get(ParamLocation)),
		Purpose:   strings.TrimSpace(get(ParamPurpose)),
		Date:      firstNonBlank(get(ParamDate), get(ParamDateLegacy)),
		Sort:      strings.TrimSpace(get(ParamSort)),
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

package search

// PriceRange is the half-open interval (Lower, Upper] over a plan price in yen.
// A missing bound is unbounded on that side.
type PriceRange struct {
	Lower    int64
	HasLower bool
	Upper    int64
	HasUpper bool
}

type PriceTier struct {
	Code  string
	Label string
	Range PriceRange
}

func atMost(upper int64) PriceRange {
	return PriceRange{Upper: upper, HasUpper: true}
}

func between(lower, upper int64) PriceRange {
	return PriceRange{Lower: lower, HasLower: true, Upper: upper, HasUpper: true}
}

func above(lower int64) PriceRange {
	return PriceRange{Lower: lower, HasLower: true}
}

// PriceTiers are the nine search bands, in display order.
var PriceTiers = []PriceTier{
	{Code: "1", Label: "〜10万円", Range: atMost(100_000)},
	{Code: "2", Label: "10〜20万円", Range: between(100_000, 200_000)},
	{Code: "3", Label: "20〜40万円", Range: between(200_000, 400_000)},
	{Code: "4", Label: "40〜60万円", Range: between(400_000, 600_000)},
	{Code: "5", Label: "60〜100万円", Range: between(600_000, 1_000_000)},
	{Code: "6", Label: "100〜150万円", Range: between(1_000_000, 1_500_000)},
	{Code: "7", Label: "150〜250万円", Range: between(1_500_000, 2_500_000)},
	{Code: "8", Label: "250〜400万円", Range: between(2_500_000, 4_000_000)},
	{Code: "9", Label: "400〜600万円以上", Range: above(4_000_000)},
}

// Three-band codes from the first release; old bookmarks still carry them.
var legacyPriceTiers = map[string]PriceRange{
	"low":  atMost(100_000),
	"mid":  between(100_000, 300_000),
	"high": above(300_000),
}

// LookupPriceRange resolves a tier code. Unknown codes report false and
// must not restrict the search.
func LookupPriceRange(code string) (PriceRange, bool) {
	for _, tier := range PriceTiers {
		if tier.Code == code {
			return tier.Range, true
		}
	}
	r, ok := legacyPriceTiers[code]
	return r, ok
}

package dto

type OptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type RegionResponse struct {
	Name        string   `json:"name"`
	Prefectures []string `json:"prefectures"`
}

type CatalogOptionsResponse struct {
	Scales      []string         `json:"scales"`
	WorldViews  []string         `json:"world_views"`
	Purposes    []string         `json:"purposes"`
	Prefectures []string         `json:"prefectures"`
	Regions     []RegionResponse `json:"regions"`
	PriceTiers  []OptionResponse `json:"price_tiers"`
	SortOptions []OptionResponse `json:"sort_options"`
}

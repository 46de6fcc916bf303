// Package search turns listing filter parameters into a predicate set.
//
// Equality, range and membership predicates are pushed down to the plan
// repository. The free-text query is not: it is applied in memory after the
// fetch, over title, description and every summary point.
package search

import (
	"strings"

	"github.com/vibast-solutions/ms-go-bridal/app/entity"
)

type Filter struct {
	// Text is the lowercased free-text query; empty means no text filter.
	Text      string
	Price     *PriceRange
	Scale     string
	WorldView string
	Location  string
	Purpose   string
	// DateContains is lowercased and matched as a substring of the date range.
	DateContains string
	Sort         Sort
}

func Build(p Params) Filter {
	f := Filter{
		Text:         strings.ToLower(p.Query),
		Scale:        p.Scale,
		WorldView:    p.WorldView,
		Location:     p.Location,
		Purpose:      p.Purpose,
		DateContains: strings.ToLower(p.Date),
		Sort:         ParseSort(p.Sort),
	}
	if p.Price != "" {
		if r, ok := LookupPriceRange(p.Price); ok {
			f.Price = &r
		}
	}
	return f
}

func (f Filter) HasText() bool {
	return f.Text != ""
}

func (f Filter) MatchesText(plan *entity.Plan) bool {
	if !f.HasText() {
		return true
	}
	if strings.Contains(strings.ToLower(plan.Title), f.Text) {
		return true
	}
	if plan.Description != nil && strings.Contains(strings.ToLower(*plan.Description), f.Text) {
		return true
	}
	for _, point := range plan.SummaryPoints {
		if strings.Contains(strings.ToLower(point), f.Text) {
			return true
		}
	}
	return false
}

// ApplyText keeps the plans matching the text query, preserving order.
func ApplyText(f Filter, plans []*entity.Plan) []*entity.Plan {
	if !f.HasText() {
		return plans
	}
	kept := make([]*entity.Plan, 0, len(plans))
	for _, plan := range plans {
		if f.MatchesText(plan) {
			kept = append(kept, plan)
		}
	}
	return kept
}

// Package catalog implements the product listing pipeline: category
// restriction, fuzzy text search and sorting. Everything here is a pure
// function of its inputs; the source slice is never mutated.
package catalog

import (
	"sort"

	"goldleaf/internal/domain"
)

type Sort string

const (
	SortNewest     Sort = "newest"
	SortPriceAsc   Sort = "price_asc"
	SortPriceDesc  Sort = "price_desc"
	SortPopularity Sort = "popularity"
)

// ParseSort maps a raw query value to a Sort, defaulting to newest.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortPriceAsc, SortPriceDesc, SortPopularity:
		return Sort(s)
	default:
		return SortNewest
	}
}

// Query are the three orthogonal listing parameters. ProductIDs restricts the
// result to members of a category's product set; nil means no restriction
// (note: nil, not empty; an empty set yields an empty result).
type Query struct {
	ProductIDs map[string]bool
	Search     string
	Sort       Sort
}

// Apply filters and orders products according to q. Filters commute: the
// category restriction and the search each only drop elements, so their
// application order cannot change the result set.
func Apply(products []domain.Product, q Query) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if q.ProductIDs != nil && !q.ProductIDs[p.ID] {
			continue
		}
		if q.Search != "" && !matchesSearch(q.Search, p) {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, q.Sort)
	return out
}

// matchesSearch tests the query against name or description. An absent
// description never matches.
func matchesSearch(query string, p domain.Product) bool {
	if FuzzyMatch(query, p.Name) {
		return true
	}
	return p.Description != "" && FuzzyMatch(query, p.Description)
}

func sortProducts(ps []domain.Product, s Sort) {
	switch s {
	case SortPriceAsc:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Price.LessThan(ps[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[j].Price.LessThan(ps[i].Price)
		})
	case SortPopularity:
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].PopularityScore > ps[j].PopularityScore
		})
	default: // newest; created_at is RFC3339, so string order is time order
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].CreatedAt > ps[j].CreatedAt
		})
	}
}

// Package filter selects saved item records by price, stock, sales and platform.
package filter

import (
	"slices"

	"github.com/law-makers/itemscrape/pkg/models"
)

// Criteria holds the selection rules. A zero value disables its rule.
type Criteria struct {
	Platforms     []models.Platform
	MinPrice      float64
	MaxPrice      float64
	MinTotalStock int
	MaxTotalStock int
	MinSales      int
	MaxSales      int
}

// IsEmpty reports whether no rule is set
func (c Criteria) IsEmpty() bool {
	return len(c.Platforms) == 0 &&
		c.MinPrice == 0 && c.MaxPrice == 0 &&
		c.MinTotalStock == 0 && c.MaxTotalStock == 0 &&
		c.MinSales == 0 && c.MaxSales == 0
}

// Match reports whether rec passes every enabled rule.
//
// A record whose minimum price is 0 carries no price signal and is never
// rejected by MinPrice.
func (c Criteria) Match(rec *models.ItemRecord) bool {
	if rec == nil {
		return false
	}

	if c.MinPrice > 0 && rec.PriceRange.Min != 0 && rec.PriceRange.Min < c.MinPrice {
		return false
	}
	if c.MaxPrice > 0 && rec.PriceRange.Max > c.MaxPrice {
		return false
	}
	if c.MinTotalStock > 0 && rec.TotalStock < c.MinTotalStock {
		return false
	}
	if c.MaxTotalStock > 0 && rec.TotalStock > c.MaxTotalStock {
		return false
	}
	if c.MinSales > 0 && rec.Sales < c.MinSales {
		return false
	}
	if c.MaxSales > 0 && rec.Sales > c.MaxSales {
		return false
	}
	if len(c.Platforms) > 0 && !slices.Contains(c.Platforms, rec.Platform) {
		return false
	}

	return true
}

// Apply returns the records matching c, preserving order
func (c Criteria) Apply(recs []*models.ItemRecord) []*models.ItemRecord {
	out := make([]*models.ItemRecord, 0, len(recs))
	for _, rec := range recs {
		if c.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

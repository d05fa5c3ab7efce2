package services

import (
	"imoveis-sp/models"
	"imoveis-sp/utils"
)

// FilterEngine applies declarative criteria over the normalized dataset and
// computes aggregates over the resulting view. Apply is side-effect free and
// may be re-run with new criteria any number of times.
type FilterEngine struct {
	logger *utils.Logger
}

// NewFilterEngine creates a FilterEngine with the given logger.
func NewFilterEngine(logger *utils.Logger) *FilterEngine {
	return &FilterEngine{logger: logger}
}

// Apply returns the listings matching all criteria.
//
// Absent bedrooms, area and price are coerced to zero for the comparisons,
// so a listing without bedroom data passes only when MinBedrooms is zero.
// That coercion silently discards such listings under any nonzero minimum
// and is kept on purpose (see DESIGN.md). The price predicate is skipped
// entirely when no listing in the dataset carries a price: inapplicable,
// not exclude-all.
func (f *FilterEngine) Apply(dataset []models.Listing, c models.FilterCriteria) []models.Listing {
	anyPrice := false
	for _, l := range dataset {
		if l.PriceBRL != nil {
			anyPrice = true
			break
		}
	}

	view := make([]models.Listing, 0, len(dataset))
	for _, l := range dataset {
		if orZero(l.Bedrooms) < c.MinBedrooms {
			continue
		}
		if orZero(l.AreaSqm) < c.MinArea {
			continue
		}
		if len(c.Neighborhoods) > 0 {
			if l.Neighborhood == nil {
				continue
			}
			if _, ok := c.Neighborhoods[*l.Neighborhood]; !ok {
				continue
			}
		}
		if c.PriceRange != nil && anyPrice {
			p := orZero(l.PriceBRL)
			if p < c.PriceRange.Min || p > c.PriceRange.Max {
				continue
			}
		}
		view = append(view, l)
	}

	f.logger.Debug("[filter] %d listings → %d after criteria", len(dataset), len(view))
	return view
}

// Stats computes aggregates over a filtered view. Unlike the filter
// predicates, means here exclude absent values instead of coercing them to
// zero; a nil mean means no listing in the view had that field.
func (f *FilterEngine) Stats(view []models.Listing) models.StatsReport {
	report := models.StatsReport{Count: len(view)}

	areaSum, areaN := 0, 0
	priceSum, priceN := 0, 0
	for _, l := range view {
		if l.AreaSqm != nil {
			areaSum += *l.AreaSqm
			areaN++
		}
		if l.PriceBRL != nil {
			priceSum += *l.PriceBRL
			priceN++
		}
	}

	if areaN > 0 {
		mean := areaSum / areaN
		report.MeanArea = &mean
	}
	if priceN > 0 {
		mean := priceSum / priceN
		report.MeanPrice = &mean
	}
	return report
}

// NeighborhoodCounts groups a view by extracted neighborhood. Listings
// without one are left out of the grouping but are still part of the view.
func (f *FilterEngine) NeighborhoodCounts(view []models.Listing) map[string]int {
	counts := make(map[string]int)
	for _, l := range view {
		if l.Neighborhood != nil {
			counts[*l.Neighborhood]++
		}
	}
	return counts
}

// Neighborhoods returns the distinct neighborhood names present in a view,
// for geocoding.
func (f *FilterEngine) Neighborhoods(view []models.Listing) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, l := range view {
		if l.Neighborhood == nil {
			continue
		}
		if _, ok := seen[*l.Neighborhood]; ok {
			continue
		}
		seen[*l.Neighborhood] = struct{}{}
		names = append(names, *l.Neighborhood)
	}
	return names
}

func orZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

package services

import (
	"testing"

	"imoveis-sp/models"
)

func listing(bedrooms, area, price *int, bairro *string) models.Listing {
	return models.Listing{
		Description:  "listing",
		Bedrooms:     bedrooms,
		AreaSqm:      area,
		PriceBRL:     price,
		Neighborhood: bairro,
	}
}

func strPtr(s string) *string { return &s }

func noFilter() models.FilterCriteria {
	return models.FilterCriteria{Neighborhoods: map[string]struct{}{}}
}

// sampleDataset has 10 rows, 3 of them without bedroom data.
func sampleDataset() []models.Listing {
	pinheiros := strPtr("Pinheiros")
	moema := strPtr("Moema")
	return []models.Listing{
		listing(intPtr(1), intPtr(40), intPtr(1500), pinheiros),
		listing(intPtr(2), intPtr(60), intPtr(2500), pinheiros),
		listing(intPtr(2), intPtr(70), nil, moema),
		listing(intPtr(3), intPtr(90), intPtr(4000), moema),
		listing(intPtr(3), nil, intPtr(3800), nil),
		listing(intPtr(4), intPtr(150), intPtr(8000), pinheiros),
		listing(intPtr(1), intPtr(35), intPtr(1200), nil),
		listing(nil, intPtr(50), intPtr(2000), moema),
		listing(nil, intPtr(45), nil, nil),
		listing(nil, nil, intPtr(900), pinheiros),
	}
}

func TestFilterZeroCoercionBedrooms(t *testing.T) {
	f := NewFilterEngine(newTestLogger())
	dataset := sampleDataset()

	c := noFilter()
	c.MinBedrooms = 0
	if got := len(f.Apply(dataset, c)); got != 10 {
		t.Errorf("min-bedrooms 0: got %d listings, want all 10", got)
	}

	c.MinBedrooms = 1
	if got := len(f.Apply(dataset, c)); got != 7 {
		t.Errorf("min-bedrooms 1: got %d listings, want 7 (absent coerced to 0)", got)
	}
}

func TestFilterMonotonicity(t *testing.T) {
	f := NewFilterEngine(newTestLogger())
	dataset := sampleDataset()

	prev := len(dataset) + 1
	for min := 0; min <= 5; min++ {
		c := noFilter()
		c.MinBedrooms = min
		got := len(f.Apply(dataset, c))
		if got > prev {
			t.Errorf("min-bedrooms %d: view grew from %d to %d", min, prev, got)
		}
		prev = got
	}

	prev = len(dataset) + 1
	for min := 0; min <= 200; min += 40 {
		c := noFilter()
		c.MinArea = min
		got := len(f.Apply(dataset, c))
		if got > prev {
			t.Errorf("min-area %d: view grew from %d to %d", min, prev, got)
		}
		prev = got
	}
}

func TestFilterNeighborhoods(t *testing.T) {
	f := NewFilterEngine(newTestLogger())
	dataset := sampleDataset()

	c := noFilter()
	if got := len(f.Apply(dataset, c)); got != 10 {
		t.Errorf("empty neighborhood set must not filter: got %d, want 10", got)
	}

	c.Neighborhoods = map[string]struct{}{"Moema": {}}
	view := f.Apply(dataset, c)
	if len(view) != 3 {
		t.Fatalf("Moema filter: got %d listings, want 3", len(view))
	}
	for _, l := range view {
		if l.Neighborhood == nil {
			t.Error("absent neighborhood must never match a non-empty set")
		}
	}
}

func TestFilterPriceRange(t *testing.T) {
	f := NewFilterEngine(newTestLogger())
	dataset := sampleDataset()

	c := noFilter()
	c.PriceRange = &models.PriceRange{Min: 1000, Max: 3000}
	view := f.Apply(dataset, c)
	// 1500, 2500, 1200, 2000 are in range; absent prices coerce to 0 and fail.
	if len(view) != 4 {
		t.Errorf("price range [1000,3000]: got %d listings, want 4", len(view))
	}
}

func TestFilterPriceSkippedWhenNoPrices(t *testing.T) {
	f := NewFilterEngine(newTestLogger())
	dataset := []models.Listing{
		listing(intPtr(2), intPtr(60), nil, nil),
		listing(intPtr(3), intPtr(80), nil, nil),
	}

	c := noFilter()
	c.PriceRange = &models.PriceRange{Min: 1000, Max: 3000}
	if got := len(f.Apply(dataset, c)); got != 2 {
		t.Errorf("price predicate must be inapplicable when no listing has a price: got %d, want 2", got)
	}
}

func TestStatsPresentValuesOnly(t *testing.T) {
	f := NewFilterEngine(newTestLogger())
	view := []models.Listing{
		listing(intPtr(2), intPtr(60), intPtr(2000), nil),
		listing(intPtr(3), intPtr(100), nil, nil),
		listing(nil, nil, intPtr(4000), nil),
	}

	stats := f.Stats(view)
	if stats.Count != 3 {
		t.Errorf("Count: got %d, want 3", stats.Count)
	}
	if stats.MeanArea == nil || *stats.MeanArea != 80 {
		t.Errorf("MeanArea: got %v, want 80 (absent excluded, not zero)", stats.MeanArea)
	}
	if stats.MeanPrice == nil || *stats.MeanPrice != 3000 {
		t.Errorf("MeanPrice: got %v, want 3000", stats.MeanPrice)
	}
}

func TestStatsNoPrices(t *testing.T) {
	f := NewFilterEngine(newTestLogger())
	view := []models.Listing{listing(intPtr(2), intPtr(60), nil, nil)}

	stats := f.Stats(view)
	if stats.MeanPrice != nil {
		t.Errorf("MeanPrice: got %v, want unavailable marker (nil)", stats.MeanPrice)
	}
}

func TestNeighborhoodCounts(t *testing.T) {
	f := NewFilterEngine(newTestLogger())
	view := sampleDataset()

	counts := f.NeighborhoodCounts(view)
	if counts["Pinheiros"] != 4 {
		t.Errorf("Pinheiros: got %d, want 4", counts["Pinheiros"])
	}
	if counts["Moema"] != 3 {
		t.Errorf("Moema: got %d, want 3", counts["Moema"])
	}
	if _, ok := counts[""]; ok {
		t.Error("absent neighborhoods must not appear in the grouping")
	}
}

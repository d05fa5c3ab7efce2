package models

import "time"

// RawListing is one scraped VivaReal card exactly as captured: the free-form
// description text plus the ad link. This is what the scraper writes to CSV
// before any extraction happens.
type RawListing struct {
	Description string
	Link        string
}

// Listing is a raw row plus the fields extracted from its description text.
// Extracted fields are pointers: nil means the pattern did not match, which
// is a distinct state from zero or empty — downstream aggregation must skip
// nil values, never count them as zero.
type Listing struct {
	Description string `json:"descricao"`
	Link        string `json:"link,omitempty"`

	Bedrooms     *int    `json:"quartos,omitempty"`
	Bathrooms    *int    `json:"banheiros,omitempty"`
	AreaSqm      *int    `json:"area_m2,omitempty"`
	PriceBRL     *int    `json:"preco_brl,omitempty"`
	Neighborhood *string `json:"bairro,omitempty"`
}

// Extracted holds the result of running the field extractor over one
// description. Each field is independently optional.
type Extracted struct {
	Bedrooms     *int
	Bathrooms    *int
	AreaSqm      *int
	PriceBRL     *int
	Neighborhood *string
}

// PriceRange is an inclusive price interval in whole BRL.
type PriceRange struct {
	Min int
	Max int
}

// FilterCriteria is built fresh per run from CLI flags, applied once and
// discarded. An empty Neighborhoods set means no neighborhood filtering.
// A nil PriceRange means no price filtering was requested.
type FilterCriteria struct {
	MinBedrooms   int
	MinArea       int
	Neighborhoods map[string]struct{}
	PriceRange    *PriceRange
}

// StatsReport holds aggregates over a filtered view. Means are computed over
// present values only; a nil mean says no listing in the view carried that
// field at all.
type StatsReport struct {
	Count     int  `json:"total"`
	MeanArea  *int `json:"area_media_m2,omitempty"`
	MeanPrice *int `json:"preco_medio_brl,omitempty"`
}

// RefreshResult summarizes one scraper run.
type RefreshResult struct {
	RecordCount int
	OutputFile  string
	Timestamp   time.Time
}

package services

import (
	"regexp"
	"strconv"
	"strings"

	"imoveis-sp/models"
)

var (
	// bedroomsRegexp captures "3 quartos" / "1 quarto"
	bedroomsRegexp = regexp.MustCompile(`(?i)(\d+)\s+quarto[s]?`)
	// bathroomsRegexp captures "2 banheiros" / "1 banheiro"
	bathroomsRegexp = regexp.MustCompile(`(?i)(\d+)\s+banheiro[s]?`)
	// areaRegexp captures a 2–4 digit figure right before the m² marker.
	// Single-digit and 5+ digit figures are noise and deliberately unmatched.
	areaRegexp = regexp.MustCompile(`(?i)\b(\d{2,4})\s?m²`)
	// priceRegexp captures the figure after the R$ marker, Brazilian
	// formatting (dot as thousands separator, comma as decimals)
	priceRegexp = regexp.MustCompile(`(?i)R\$\s?([\d\.\,]+)`)
	// neighborhoodRegexp captures "em Vila Olímpia", "no Brooklin",
	// "na Bela Vista" etc.: preposition, then a capitalized place phrase
	// terminated at a comma, dash or end of string
	neighborhoodRegexp = regexp.MustCompile(`\b(?i:em|no|na|nos|nas)\s+([A-ZÀ-ÖØ-Þ][A-Za-zÀ-ÖØ-öø-ÿ\s\-]*?)(?:\s*[-,]|$)`)
	// neighborhoodFallbackRegexp is tried when the preposition pattern
	// fails: "<place>, São Paulo"
	neighborhoodFallbackRegexp = regexp.MustCompile(`([A-Za-zÀ-ÖØ-öø-ÿ\s\-]+?),\s*São Paulo`)
)

// Extractor derives typed listing fields from free-form Portuguese
// description text. First match wins per field; an unmatched field stays
// nil. Extract never fails: malformed text degrades to absent fields.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses one description string into its typed fields.
func (e *Extractor) Extract(description string) models.Extracted {
	return models.Extracted{
		Bedrooms:     matchInt(bedroomsRegexp, description),
		Bathrooms:    matchInt(bathroomsRegexp, description),
		AreaSqm:      matchInt(areaRegexp, description),
		PriceBRL:     e.extractPrice(description),
		Neighborhood: e.extractNeighborhood(description),
	}
}

// extractPrice parses the first R$ figure, stripping both separators.
// "R$ 1.234,56" becomes 123456: the decimal part is discarded along with
// the separators, not rounded.
func (e *Extractor) extractPrice(description string) *int {
	m := priceRegexp.FindStringSubmatch(description)
	if m == nil {
		return nil
	}
	digits := strings.NewReplacer(".", "", ",", "").Replace(m[1])
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func (e *Extractor) extractNeighborhood(description string) *string {
	m := neighborhoodRegexp.FindStringSubmatch(description)
	if m == nil {
		m = neighborhoodFallbackRegexp.FindStringSubmatch(description)
	}
	if m == nil {
		return nil
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return nil
	}
	return &name
}

func matchInt(re *regexp.Regexp, s string) *int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

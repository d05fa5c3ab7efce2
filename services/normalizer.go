package services

import (
	"errors"
	"strings"

	"imoveis-sp/models"
	"imoveis-sp/utils"
)

// ErrEmptyDataset means the input had rows but none survived description
// cleaning. Callers should surface it as a warning, not a crash: the
// accompanying slice is a valid, empty result.
var ErrEmptyDataset = errors.New("no usable listings after cleaning")

// Normalizer turns raw scraped rows into the working dataset: it drops rows
// without a description, deduplicates, and runs the field extractor over
// every surviving row. The output is the single source of truth that filter
// and aggregation stages consume.
type Normalizer struct {
	logger    *utils.Logger
	extractor *Extractor
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger, extractor: NewExtractor()}
}

// Normalize processes raw rows in order. Deduplication happens once, before
// extraction, keyed by link when one is present and by the full raw record
// otherwise. Extraction is deterministic and pure, so normalizing an
// already-normalized dataset again yields the identical record set.
func (n *Normalizer) Normalize(rows []models.RawListing) ([]models.Listing, error) {
	seen := make(map[string]struct{}, len(rows))
	result := make([]models.Listing, 0, len(rows))
	dropped := 0

	for _, r := range rows {
		desc := strings.TrimSpace(r.Description)
		if desc == "" {
			dropped++
			continue
		}

		link := strings.TrimSpace(r.Link)
		key := "link\x00" + link
		if link == "" {
			key = "row\x00" + desc
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		ex := n.extractor.Extract(desc)
		result = append(result, models.Listing{
			Description:  desc,
			Link:         link,
			Bedrooms:     ex.Bedrooms,
			Bathrooms:    ex.Bathrooms,
			AreaSqm:      ex.AreaSqm,
			PriceBRL:     ex.PriceBRL,
			Neighborhood: ex.Neighborhood,
		})
	}

	n.logger.Info("[normalizer] %d raw rows → %d listings (%d without description, %d duplicates)",
		len(rows), len(result), dropped, len(rows)-dropped-len(result))

	if len(result) == 0 {
		return result, ErrEmptyDataset
	}
	return result, nil
}

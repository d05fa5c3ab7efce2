package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"imoveis-sp/models"
)

// exportHeader lists the filtered view's visible columns, in display order.
var exportHeader = []string{
	headerDescription, "Bairro", "Área", "Quartos", "Banheiros", "Preço", headerLink,
}

// exportRow renders one listing for export. Absent fields become empty
// cells, so the round trip stays lossless: empty cell reads back as absent.
func exportRow(l models.Listing) []string {
	return []string{
		l.Description,
		strOrEmpty(l.Neighborhood),
		intOrEmpty(l.AreaSqm),
		intOrEmpty(l.Bedrooms),
		intOrEmpty(l.Bathrooms),
		intOrEmpty(l.PriceBRL),
		l.Link,
	}
}

// WriteFilteredCSV exports the filtered view to a UTF-8 CSV with BOM, the
// encoding spreadsheet tools expect for accented Portuguese headers.
// Intermediate directories are created automatically.
func WriteFilteredCSV(path string, view []models.Listing) error {
	f, err := createWithDirs(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("csv: write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, l := range view {
		if err := w.Write(exportRow(l)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteRawCSV persists freshly scraped rows, BOM included, in the layout
// the pipeline reads back at startup.
func WriteRawCSV(path string, rows []models.RawListing) error {
	f, err := createWithDirs(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("csv: write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{headerDescription, headerLink}); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Description, r.Link}); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func createWithDirs(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("csv: create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}
	return f, nil
}

func intOrEmpty(p *int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%d", *p)
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

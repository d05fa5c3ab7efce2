package storage

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"imoveis-sp/models"
)

// ErrMissingInput means the input CSV does not exist. This is the one fatal
// dataset condition: the pipeline halts before any processing, distinctly
// from "zero rows after filtering".
var ErrMissingInput = errors.New("input CSV not found")

const (
	headerDescription = "Descrição"
	// headerDescriptionLegacy is the unaccented spelling older scrape runs
	// produced. It is renamed on load as a standing normalization rule.
	headerDescriptionLegacy = "Descricao"
	headerLink              = "Link"
)

// ReadListings loads raw scraped rows from a UTF-8 CSV, tolerating an
// optional BOM and the legacy unaccented description header.
func ReadListings(path string) ([]models.RawListing, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(stripBOM(f))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("csv: %q is empty", path)
		}
		return nil, fmt.Errorf("csv: read header of %q: %w", path, err)
	}

	descIdx, linkIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case headerDescription:
			descIdx = i
		case headerDescriptionLegacy:
			if descIdx < 0 {
				descIdx = i
			}
		case headerLink:
			linkIdx = i
		}
	}
	if descIdx < 0 {
		return nil, fmt.Errorf("csv: %q has no %q column", path, headerDescription)
	}

	var rows []models.RawListing
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read %q: %w", path, err)
		}

		row := models.RawListing{}
		if descIdx < len(record) {
			row.Description = record[descIdx]
		}
		if linkIdx >= 0 && linkIdx < len(record) {
			row.Link = record[linkIdx]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(3); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(3)
	}
	return br
}

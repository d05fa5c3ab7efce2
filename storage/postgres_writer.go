package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"imoveis-sp/models"
)

// PostgresWriter persists the normalized dataset to PostgreSQL. Extracted
// columns are nullable so absent fields stay NULL, never zero.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection, runs schema migrations, and returns
// a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS imoveis (
			id           SERIAL PRIMARY KEY,
			description  TEXT        NOT NULL,
			link         TEXT        NOT NULL DEFAULT '',
			bedrooms     INT,
			bathrooms    INT,
			area_sqm     INT,
			price_brl    INT,
			neighborhood TEXT,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_imoveis_neighborhood ON imoveis(neighborhood);
		CREATE INDEX IF NOT EXISTS idx_imoveis_price        ON imoveis(price_brl);
	`)
	return err
}

// Clear deletes all stored listings. The table holds exactly one dataset,
// replaced wholesale on every run.
func (pw *PostgresWriter) Clear() error {
	if _, err := pw.db.Exec("DELETE FROM imoveis"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write replaces the stored dataset with the given listings.
func (pw *PostgresWriter) Write(listings []models.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []models.Listing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*7)

	for idx, l := range batch {
		base := idx * 7
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		valueArgs = append(valueArgs,
			l.Description, l.Link, l.Bedrooms, l.Bathrooms, l.AreaSqm, l.PriceBRL, l.Neighborhood)
	}

	query := fmt.Sprintf(`
		INSERT INTO imoveis (description, link, bedrooms, bathrooms, area_sqm, price_brl, neighborhood)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

// FetchAll retrieves the stored dataset in insertion order.
func (pw *PostgresWriter) FetchAll() ([]models.Listing, error) {
	rows, err := pw.db.Query(`
		SELECT description, link, bedrooms, bathrooms, area_sqm, price_brl, neighborhood
		FROM imoveis
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		var bedrooms, bathrooms, area, price sql.NullInt64
		var neighborhood sql.NullString
		if err := rows.Scan(&l.Description, &l.Link,
			&bedrooms, &bathrooms, &area, &price, &neighborhood); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		l.Bedrooms = nullableInt(bedrooms)
		l.Bathrooms = nullableInt(bathrooms)
		l.AreaSqm = nullableInt(area)
		l.PriceBRL = nullableInt(price)
		if neighborhood.Valid {
			l.Neighborhood = &neighborhood.String
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

func nullableInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"imoveis-sp/config"
	"imoveis-sp/geocode"
	"imoveis-sp/models"
	"imoveis-sp/scraper/vivareal"
	"imoveis-sp/server"
	"imoveis-sp/services"
	"imoveis-sp/storage"
	"imoveis-sp/utils"
)

func main() {
	refresh := flag.Bool("refresh", false, "run the scraper before loading the dataset")
	serve := flag.Bool("serve", false, "serve the filtered view as a JSON API after the pipeline")
	minQuartos := flag.Int("min-quartos", 0, "minimum number of bedrooms")
	minArea := flag.Int("min-area", 0, "minimum area in m²")
	bairros := flag.String("bairros", "", "comma-separated neighborhood filter (empty = all)")
	precoMin := flag.Int("preco-min", -1, "minimum price in R$ (requires -preco-max)")
	precoMax := flag.Int("preco-max", -1, "maximum price in R$ (requires -preco-min)")
	flag.Parse()

	logger := utils.NewLogger()
	cfg := config.Load(logger)

	logger.Info("=== Imóveis SP pipeline starting ===")

	if *refresh {
		scraper := vivareal.New(cfg, logger)
		result, err := scraper.Run(cfg.InputCSVPath, cfg.Headless)
		if err != nil {
			// Fatal to the refresh action only: the dataset already on
			// disk is untouched and the next run can still use it.
			logger.Error("Refresh failed: %v", err)
			os.Exit(1)
		}
		logger.Info("Refresh done: %d listings at %s (%s)",
			result.RecordCount, result.OutputFile, result.Timestamp.Format("15:04:05"))
	}

	rawRows, err := storage.ReadListings(cfg.InputCSVPath)
	if err != nil {
		if errors.Is(err, storage.ErrMissingInput) {
			logger.Error("No data available: %v", err)
			logger.Error("Run with -refresh to collect listings first")
		} else {
			logger.Error("Failed to load dataset: %v", err)
		}
		os.Exit(1)
	}

	normalizer := services.NewNormalizer(logger)
	dataset, err := normalizer.Normalize(rawRows)
	if err != nil {
		if errors.Is(err, services.ErrEmptyDataset) {
			logger.Warn("Dataset loaded but empty after cleaning, nothing to do")
			return
		}
		logger.Error("Normalization failed: %v", err)
		os.Exit(1)
	}

	criteria := buildCriteria(*minQuartos, *minArea, *bairros, *precoMin, *precoMax)

	engine := services.NewFilterEngine(logger)
	view := engine.Apply(dataset, criteria)

	if len(view) == 0 {
		logger.Warn("No listings match the current filters")
		reportRawComparison(cfg, logger, len(dataset))
		return
	}

	stats := engine.Stats(view)
	counts := engine.NeighborhoodCounts(view)

	if err := storage.WriteFilteredCSV(cfg.ExportCSVPath, view); err != nil {
		logger.Error("CSV export failed: %v", err)
	} else {
		logger.Info("Filtered view exported to %s", cfg.ExportCSVPath)
	}
	if err := storage.WriteFilteredXLSX(cfg.ExportXLSXPath, view); err != nil {
		logger.Error("XLSX export failed: %v", err)
	} else {
		logger.Info("Filtered view exported to %s", cfg.ExportXLSXPath)
	}

	resolver := buildResolver(cfg, logger)
	coords := resolver.Resolve(engine.Neighborhoods(view))

	services.PrintReport(stats, counts, coords)

	if cfg.DatabaseURL != "" {
		storeDataset(cfg.DatabaseURL, dataset, logger)
	}

	if *serve {
		srv := server.New(logger, view, stats, counts, coords)
		if err := srv.ListenAndServe(cfg.ServeAddr); err != nil {
			logger.Error("API server stopped: %v", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("  Done. %d of %d listings matched the filters.\n\n", len(view), len(dataset))
}

func buildCriteria(minQuartos, minArea int, bairros string, precoMin, precoMax int) models.FilterCriteria {
	criteria := models.FilterCriteria{
		MinBedrooms:   minQuartos,
		MinArea:       minArea,
		Neighborhoods: make(map[string]struct{}),
	}
	for _, b := range strings.Split(bairros, ",") {
		if b = strings.TrimSpace(b); b != "" {
			criteria.Neighborhoods[b] = struct{}{}
		}
	}
	if precoMin >= 0 && precoMax >= 0 {
		criteria.PriceRange = &models.PriceRange{Min: precoMin, Max: precoMax}
	}
	return criteria
}

func buildResolver(cfg *config.Config, logger *utils.Logger) geocode.Resolver {
	if cfg.GeocodeMode == "nominatim" {
		return geocode.NewNominatim(cfg.GeocodeBaseURL, cfg.GeocodeCity, cfg.GeocodeCountry,
			cfg.GeocodeDelayMs, logger)
	}
	if cfg.BairroTablePath != "" {
		static, err := geocode.NewStaticFromFile(cfg.BairroTablePath)
		if err == nil {
			return static
		}
		logger.Warn("Could not load bairro table, using built-in: %v", err)
	}
	return geocode.NewStatic()
}

// reportRawComparison offers a diagnostic view when filtering matched
// nothing: how the raw snapshot compares against the normalized dataset.
func reportRawComparison(cfg *config.Config, logger *utils.Logger, datasetLen int) {
	logger.Info("Normalized dataset holds %d listings before filtering", datasetLen)
	if cfg.RawSnapshotPath == "" {
		return
	}
	raw, err := storage.ReadListings(cfg.RawSnapshotPath)
	if err != nil {
		logger.Debug("Raw snapshot unavailable: %v", err)
		return
	}
	logger.Info("Raw snapshot %s holds %d rows before extraction", cfg.RawSnapshotPath, len(raw))
}

func storeDataset(dsn string, dataset []models.Listing, logger *utils.Logger) {
	pg, err := storage.NewPostgresWriter(dsn)
	if err != nil {
		logger.Error("PostgreSQL unavailable, skipping persistence: %v", err)
		return
	}
	defer pg.Close()

	if err := pg.Write(dataset); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
		return
	}
	logger.Info("Normalized dataset stored in PostgreSQL (table: imoveis)")
}

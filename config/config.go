package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"imoveis-sp/utils"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Dataset paths
	InputCSVPath    string
	RawSnapshotPath string

	// Export paths
	ExportCSVPath  string
	ExportXLSXPath string

	// Optional PostgreSQL persistence (skipped when empty)
	DatabaseURL string

	// Geocoding
	GeocodeMode     string // "static" or "nominatim"
	GeocodeBaseURL  string
	GeocodeCity     string
	GeocodeCountry  string
	GeocodeDelayMs  int
	BairroTablePath string

	// Scraper
	SearchURL        string
	Headless         bool
	MaxRetries       int
	ScrapeTimeoutSec int
	ChromeBin        string

	// HTTP API
	ServeAddr string
}

// Load reads the .env file and returns a populated Config struct.
func Load(logger *utils.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		logger.Warn("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		InputCSVPath:    getEnv("INPUT_CSV_PATH", "data/imoveis_vivareal.csv"),
		RawSnapshotPath: getEnv("RAW_SNAPSHOT_PATH", ""),

		ExportCSVPath:  getEnv("EXPORT_CSV_PATH", "output/imoveis_filtrados.csv"),
		ExportXLSXPath: getEnv("EXPORT_XLSX_PATH", "output/imoveis_filtrados.xlsx"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		GeocodeMode:     getEnv("GEOCODE_MODE", "static"),
		GeocodeBaseURL:  getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocodeCity:     getEnv("GEOCODE_CITY", "São Paulo"),
		GeocodeCountry:  getEnv("GEOCODE_COUNTRY", "Brasil"),
		GeocodeDelayMs:  getEnvInt("GEOCODE_DELAY_MS", 1000),
		BairroTablePath: getEnv("BAIRRO_TABLE_PATH", ""),

		SearchURL:        getEnv("SEARCH_URL", "https://www.vivareal.com.br/aluguel/sp/sao-paulo/"),
		Headless:         getEnvBool("HEADLESS", true),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),
		ScrapeTimeoutSec: getEnvInt("SCRAPE_TIMEOUT_SEC", 90),
		ChromeBin:        getEnv("CHROME_BIN", ""),

		ServeAddr: getEnv("SERVE_ADDR", ":8080"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

package config

import (
	"testing"

	"imoveis-sp/utils"
)

func TestLoadDefaults(t *testing.T) {
	// Blank out the checked keys so ambient env vars cannot leak in.
	for _, key := range []string{"INPUT_CSV_PATH", "GEOCODE_MODE", "GEOCODE_DELAY_MS", "HEADLESS"} {
		t.Setenv(key, "")
	}

	cfg := Load(utils.NewLogger())

	if cfg.InputCSVPath != "data/imoveis_vivareal.csv" {
		t.Errorf("InputCSVPath: got %q", cfg.InputCSVPath)
	}
	if cfg.GeocodeMode != "static" {
		t.Errorf("GeocodeMode: got %q, want static", cfg.GeocodeMode)
	}
	if cfg.GeocodeDelayMs != 1000 {
		t.Errorf("GeocodeDelayMs: got %d, want 1000", cfg.GeocodeDelayMs)
	}
	if !cfg.Headless {
		t.Error("Headless should default to true")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GEOCODE_MODE", "nominatim")
	t.Setenv("GEOCODE_DELAY_MS", "250")
	t.Setenv("HEADLESS", "false")

	cfg := Load(utils.NewLogger())

	if cfg.GeocodeMode != "nominatim" {
		t.Errorf("GEOCODE_MODE override ignored: got %q", cfg.GeocodeMode)
	}
	if cfg.GeocodeDelayMs != 250 {
		t.Errorf("GEOCODE_DELAY_MS override ignored: got %d", cfg.GeocodeDelayMs)
	}
	if cfg.Headless {
		t.Error("HEADLESS=false override ignored")
	}
}

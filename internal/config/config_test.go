package config

import (
	"os"
	"testing"
)

func TestDefaultSimulationSettings(t *testing.T) {
	os.Unsetenv("SIM_PATH_COUNT")
	os.Unsetenv("SIM_TIME_STEPS")
	os.Unsetenv("SIM_SEED")

	cfg := Load()

	if cfg.Simulation.PathCount != 20000 {
		t.Errorf("Expected default path count 20000, got %d", cfg.Simulation.PathCount)
	}
	if cfg.Simulation.TimeSteps != 126 {
		t.Errorf("Expected default time steps 126, got %d", cfg.Simulation.TimeSteps)
	}
	if cfg.Simulation.Seed != 42 {
		t.Errorf("Expected default seed 42, got %d", cfg.Simulation.Seed)
	}
}

func TestPathCountEnvOverride(t *testing.T) {
	os.Setenv("SIM_PATH_COUNT", "5000")
	defer os.Unsetenv("SIM_PATH_COUNT")

	cfg := Load()

	if cfg.Simulation.PathCount != 5000 {
		t.Errorf("Expected path count 5000 from env, got %d", cfg.Simulation.PathCount)
	}
}

func TestProviderEnvOverride(t *testing.T) {
	os.Setenv("MARKET_PROVIDER", "static")
	defer os.Unsetenv("MARKET_PROVIDER")

	cfg := Load()

	if cfg.Market.Provider != "static" {
		t.Errorf("Expected provider static from env, got %s", cfg.Market.Provider)
	}
}

func TestTreasuryFallbackDefault(t *testing.T) {
	os.Unsetenv("TREASURY_FALLBACK_RATE")

	cfg := Load()

	if cfg.Treasury.FallbackRate != 0.045 {
		t.Errorf("Expected fallback rate 0.045, got %g", cfg.Treasury.FallbackRate)
	}
}

func TestDefaultImpliedVolEnvOverride(t *testing.T) {
	os.Setenv("DEFAULT_IMPLIED_VOL", "0.25")
	defer os.Unsetenv("DEFAULT_IMPLIED_VOL")

	cfg := Load()

	if cfg.Market.DefaultImpliedVol != 0.25 {
		t.Errorf("Expected default implied vol 0.25 from env, got %g", cfg.Market.DefaultImpliedVol)
	}
}

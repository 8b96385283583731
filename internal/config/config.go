package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// SimulationConfig represents Monte Carlo simulation defaults
type SimulationConfig struct {
	PathCount int    `yaml:"path_count"` // trajectories per run
	TimeSteps int    `yaml:"time_steps"` // increments per trajectory
	Workers   int    `yaml:"workers"`    // 0 = one per CPU
	Seed      uint64 `yaml:"seed"`       // base seed for reproducible runs
}

// StaticQuoteConfig holds the fixed snapshot served by the static provider
type StaticQuoteConfig struct {
	Spot              float64 `yaml:"spot"`
	DividendYield     float64 `yaml:"dividend_yield"`
	ImpliedVolatility float64 `yaml:"implied_volatility"`
}

// MarketConfig represents market data provider configuration
type MarketConfig struct {
	Provider             string            `yaml:"provider"`               // "yahoo" or "static"
	DefaultImpliedVol    float64           `yaml:"default_implied_vol"`    // used when the feed omits IV
	DefaultDividendYield float64           `yaml:"default_dividend_yield"` // used when the feed omits yield
	Static               StaticQuoteConfig `yaml:"static"`
}

// TreasuryConfig represents risk-free rate configuration
type TreasuryConfig struct {
	FallbackRate float64 `yaml:"fallback_rate"` // used when the fiscaldata API is unreachable
}

type Config struct {
	// Server settings
	Port string

	// Market data settings
	Market MarketConfig

	// Risk-free rate settings
	Treasury TreasuryConfig

	// Simulation defaults
	Simulation SimulationConfig

	// Logging settings
	Logging LoggingConfig
}

type YAMLConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Market     MarketConfig     `yaml:"market"`
	Treasury   TreasuryConfig   `yaml:"treasury"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Market: MarketConfig{
			Provider:             getEnv("MARKET_PROVIDER", "yahoo"),
			DefaultImpliedVol:    getEnvFloat("DEFAULT_IMPLIED_VOL", 0.30),
			DefaultDividendYield: getEnvFloat("DEFAULT_DIVIDEND_YIELD", 0.0),
		},
		Treasury: TreasuryConfig{
			FallbackRate: getEnvFloat("TREASURY_FALLBACK_RATE", 0.045),
		},
		Simulation: SimulationConfig{
			PathCount: getEnvInt("SIM_PATH_COUNT", 20000),
			TimeSteps: getEnvInt("SIM_TIME_STEPS", 126),
			Workers:   getEnvInt("SIM_WORKERS", 0),
			Seed:      getEnvUint64("SIM_SEED", 42),
		},
		Logging: LoggingConfig{
			LogLevel: getEnv("LOG_LEVEL", "info"),
			LogFile:  getEnv("LOG_FILE", "takeprofit.log"),
		},
	}

	// YAML values win over built-in defaults but never over an explicitly set
	// environment variable.
	if yamlCfg := loadYAMLConfig(); yamlCfg != nil {
		if yamlCfg.Server.Port != "" && os.Getenv("PORT") == "" {
			cfg.Port = yamlCfg.Server.Port
		}
		if yamlCfg.Market.Provider != "" && os.Getenv("MARKET_PROVIDER") == "" {
			cfg.Market.Provider = yamlCfg.Market.Provider
		}
		if yamlCfg.Market.DefaultImpliedVol > 0 && os.Getenv("DEFAULT_IMPLIED_VOL") == "" {
			cfg.Market.DefaultImpliedVol = yamlCfg.Market.DefaultImpliedVol
		}
		if yamlCfg.Market.DefaultDividendYield > 0 && os.Getenv("DEFAULT_DIVIDEND_YIELD") == "" {
			cfg.Market.DefaultDividendYield = yamlCfg.Market.DefaultDividendYield
		}
		if yamlCfg.Market.Static.Spot > 0 {
			cfg.Market.Static = yamlCfg.Market.Static
		}
		if yamlCfg.Treasury.FallbackRate > 0 && os.Getenv("TREASURY_FALLBACK_RATE") == "" {
			cfg.Treasury.FallbackRate = yamlCfg.Treasury.FallbackRate
		}
		if yamlCfg.Simulation.PathCount > 0 && os.Getenv("SIM_PATH_COUNT") == "" {
			cfg.Simulation.PathCount = yamlCfg.Simulation.PathCount
		}
		if yamlCfg.Simulation.TimeSteps > 0 && os.Getenv("SIM_TIME_STEPS") == "" {
			cfg.Simulation.TimeSteps = yamlCfg.Simulation.TimeSteps
		}
		if yamlCfg.Simulation.Workers > 0 && os.Getenv("SIM_WORKERS") == "" {
			cfg.Simulation.Workers = yamlCfg.Simulation.Workers
		}
		if yamlCfg.Simulation.Seed > 0 && os.Getenv("SIM_SEED") == "" {
			cfg.Simulation.Seed = yamlCfg.Simulation.Seed
		}
		if yamlCfg.Logging.LogLevel != "" && os.Getenv("LOG_LEVEL") == "" {
			cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
		}
		if yamlCfg.Logging.LogFile != "" && os.Getenv("LOG_FILE") == "" {
			cfg.Logging.LogFile = yamlCfg.Logging.LogFile
		}
	}

	return cfg
}

func loadYAMLConfig() *YAMLConfig {
	data, err := os.ReadFile("config.yaml")
	if err != nil {
		// Could not read config.yaml - silently return nil
		return nil
	}

	var yamlCfg YAMLConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		// Could not parse config.yaml - silently return nil
		return nil
	}

	return &yamlCfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

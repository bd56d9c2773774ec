package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/rustyeddy/pricingsim/pkg/claims"
	"github.com/rustyeddy/pricingsim/pkg/demand"
	"github.com/rustyeddy/pricingsim/pkg/journal"
	"github.com/rustyeddy/pricingsim/pkg/pricing"
	"github.com/rustyeddy/pricingsim/pkg/risk"
	"github.com/rustyeddy/pricingsim/pkg/sim"
	"gopkg.in/yaml.v3"
)

// Config represents the complete simulation configuration
type Config struct {
	Run      RunConfig      `json:"run" yaml:"run"`
	Scenario string         `json:"scenario" yaml:"scenario"`
	Loadings LoadingsConfig `json:"loadings" yaml:"loadings"`
	Pricing  PricingConfig  `json:"pricing" yaml:"pricing"`
	Market   MarketConfig   `json:"market" yaml:"market"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// RunConfig contains run initialization parameters
type RunConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	MaxPeriods     int     `json:"max_periods" yaml:"max_periods"` // 0 = no cap
	Seed           *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// LoadingsConfig contains the premium markups
type LoadingsConfig struct {
	ExpenseRatio float64 `json:"expense_ratio" yaml:"expense_ratio"`
	BufferRatio  float64 `json:"buffer_ratio" yaml:"buffer_ratio"`
}

// PricingConfig contains the chosen price level
type PricingConfig struct {
	PremiumFactor float64 `json:"premium_factor" yaml:"premium_factor"` // percent of gross premium
}

// MarketConfig contains the demand assumptions
type MarketConfig struct {
	BasePolicies     int     `json:"base_policies" yaml:"base_policies"`
	PriceSensitivity float64 `json:"price_sensitivity" yaml:"price_sensitivity"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	PeriodsFile string `json:"periods_file,omitempty" yaml:"periods_file,omitempty"`
	CapitalFile string `json:"capital_file,omitempty" yaml:"capital_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig contains logger settings
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "console" or "json"
}

// Environment overrides, also read from a .env file when present.
const (
	EnvSeed           = "PRICINGSIM_SEED"
	EnvInitialCapital = "PRICINGSIM_INITIAL_CAPITAL"
	EnvLogLevel       = "PRICINGSIM_LOG_LEVEL"
	EnvJournalDB      = "PRICINGSIM_JOURNAL_DB"
)

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load reads path, or the defaults when path is empty, then applies
// environment overrides.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(envFiles...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv loads .env files (missing files are fine) and applies PRICINGSIM_*
// overrides on top of the file settings.
func (c *Config) ApplyEnv(envFiles ...string) error {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return fmt.Errorf("load %s: %w", f, err)
			}
		}
	}
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	}

	if v := strings.TrimSpace(os.Getenv(EnvSeed)); v != "" {
		if strings.EqualFold(v, "none") {
			c.Run.Seed = nil
		} else {
			seed, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", EnvSeed, err)
			}
			c.Run.Seed = &seed
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvInitialCapital)); v != "" {
		capital, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvInitialCapital, err)
		}
		c.Run.InitialCapital = capital
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvJournalDB)); v != "" {
		c.Journal.Type = "sqlite"
		c.Journal.DBPath = v
	}
	return nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Run.InitialCapital <= 0 {
		return fmt.Errorf("run.initial_capital must be positive")
	}
	if c.Run.MaxPeriods < 0 {
		return fmt.Errorf("run.max_periods must not be negative")
	}
	if _, err := risk.Lookup(c.Scenario); err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	if err := c.loadings().Validate(); err != nil {
		return fmt.Errorf("loadings: %w", err)
	}
	if c.Pricing.PremiumFactor < 0 {
		return fmt.Errorf("pricing.premium_factor must not be negative")
	}
	if err := c.market().Validate(); err != nil {
		return fmt.Errorf("market: %w", err)
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.PeriodsFile == "" || c.Journal.CapitalFile == "" {
			return fmt.Errorf("journal periods_file and capital_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Run: RunConfig{
			InitialCapital: 1_000_000,
			MaxPeriods:     12,
		},
		Scenario: risk.DefaultScenario,
		Loadings: LoadingsConfig{
			ExpenseRatio: 0.20,
			BufferRatio:  0.10,
		},
		Pricing: PricingConfig{
			PremiumFactor: 100,
		},
		Market: MarketConfig{
			BasePolicies:     2000,
			PriceSensitivity: 1.2,
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) loadings() pricing.Loadings {
	return pricing.Loadings{ExpenseRatio: c.Loadings.ExpenseRatio, BufferRatio: c.Loadings.BufferRatio}
}

func (c *Config) market() demand.Market {
	return demand.Market{BasePolicies: c.Market.BasePolicies, PriceSensitivity: c.Market.PriceSensitivity}
}

// Seed converts the optional seed.
func (c *Config) Seed() claims.Seed {
	if c.Run.Seed == nil {
		return claims.NoSeed()
	}
	return claims.SeedOf(*c.Run.Seed)
}

// Inputs builds the per-period inputs.
func (c *Config) Inputs() (sim.Inputs, error) {
	s, err := risk.Lookup(c.Scenario)
	if err != nil {
		return sim.Inputs{}, err
	}
	return sim.Inputs{
		Scenario: s,
		Loadings: c.loadings(),
		Factor:   c.Pricing.PremiumFactor,
		Market:   c.market(),
	}, nil
}

// EngineConfig builds the engine settings.
func (c *Config) EngineConfig() sim.EngineConfig {
	return sim.EngineConfig{
		InitialCapital: c.Run.InitialCapital,
		Seed:           c.Seed(),
		MaxPeriods:     c.Run.MaxPeriods,
	}
}

// OpenJournal opens the configured journal backend.
func (c *Config) OpenJournal() (journal.Journal, error) {
	switch c.Journal.Type {
	case "csv":
		return journal.NewCSV(c.Journal.PeriodsFile, c.Journal.CapitalFile)
	case "sqlite":
		return journal.NewSQLite(c.Journal.DBPath)
	default:
		return journal.Discard(), nil
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/pricingsim/pkg/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, 1_000_000.0, cfg.Run.InitialCapital)
	assert.Equal(t, "medium", cfg.Scenario)
	assert.Equal(t, 100.0, cfg.Pricing.PremiumFactor)
	assert.Equal(t, 2000, cfg.Market.BasePolicies)
	assert.Nil(t, cfg.Run.Seed)
	assert.False(t, cfg.Seed().IsSet())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:   "zero capital",
			mutate: func(c *Config) { c.Run.InitialCapital = 0 },
			errMsg: "run.initial_capital must be positive",
		},
		{
			name:   "negative max periods",
			mutate: func(c *Config) { c.Run.MaxPeriods = -1 },
			errMsg: "run.max_periods must not be negative",
		},
		{
			name:   "unknown scenario",
			mutate: func(c *Config) { c.Scenario = "extreme" },
			errMsg: "scenario",
		},
		{
			name:   "expense ratio above one",
			mutate: func(c *Config) { c.Loadings.ExpenseRatio = 1.5 },
			errMsg: "loadings",
		},
		{
			name:   "negative premium factor",
			mutate: func(c *Config) { c.Pricing.PremiumFactor = -10 },
			errMsg: "pricing.premium_factor must not be negative",
		},
		{
			name:   "negative base policies",
			mutate: func(c *Config) { c.Market.BasePolicies = -5 },
			errMsg: "market",
		},
		{
			name:   "price sensitivity above cap",
			mutate: func(c *Config) { c.Market.PriceSensitivity = 40 },
			errMsg: "price_sensitivity must not exceed 10",
		},
		{
			name:   "csv journal without files",
			mutate: func(c *Config) { c.Journal = JournalConfig{Type: "csv", PeriodsFile: "periods.csv"} },
			errMsg: "journal periods_file and capital_file required for CSV type",
		},
		{
			name:   "sqlite journal without path",
			mutate: func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} },
			errMsg: "journal db_path required for SQLite type",
		},
		{
			name:   "unknown journal type",
			mutate: func(c *Config) { c.Journal.Type = "postgres" },
			errMsg: "journal.type must be",
		},
		{
			name:   "unknown log format",
			mutate: func(c *Config) { c.Log.Format = "xml" },
			errMsg: "log.format must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		filename string
	}{
		{"YAML format", "config.yaml"},
		{"YML format", "config.yml"},
		{"JSON format", "config.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.filename)

			original := Default()
			seed := uint64(42)
			original.Run.Seed = &seed
			original.Scenario = "high"
			original.Pricing.PremiumFactor = 115

			err := original.SaveToFile(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, original, loaded)
			v, ok := loaded.Seed().Value()
			assert.True(t, ok)
			assert.Equal(t, uint64(42), v)
		})
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(tmpDir, "nope.yaml"))
		assert.ErrorContains(t, err, "read config file")
	})

	t.Run("invalid content", func(t *testing.T) {
		path := filepath.Join(tmpDir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("run: [unclosed"), 0644))
		_, err := LoadFromFile(path)
		assert.ErrorContains(t, err, "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(tmpDir, "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("run:\n  initial_capital: -5\n"), 0644))
		_, err := LoadFromFile(path)
		assert.ErrorContains(t, err, "invalid config")
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSeed, "7")
	t.Setenv(EnvInitialCapital, "250000")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvJournalDB, filepath.Join(t.TempDir(), "runs.db"))

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "missing.env")))

	v, ok := cfg.Seed().Value()
	assert.True(t, ok)
	assert.Equal(t, uint64(7), v)
	assert.Equal(t, 250000.0, cfg.Run.InitialCapital)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvFile(t *testing.T) {
	// godotenv never overrides a set variable; t.Setenv restores it afterwards.
	t.Setenv(EnvSeed, "")
	require.NoError(t, os.Unsetenv(EnvSeed))

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(EnvSeed+"=99\n"), 0644))

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envFile))

	v, ok := cfg.Seed().Value()
	assert.True(t, ok)
	assert.Equal(t, uint64(99), v)
}

func TestApplyEnvErrors(t *testing.T) {
	t.Setenv(EnvSeed, "minus-one")
	err := Default().ApplyEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, EnvSeed)

	t.Setenv(EnvSeed, "none")
	t.Setenv(EnvInitialCapital, "lots")
	err = Default().ApplyEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, EnvInitialCapital)
}

func TestApplyEnvClearsSeed(t *testing.T) {
	t.Setenv(EnvSeed, "none")

	cfg := Default()
	seed := uint64(3)
	cfg.Run.Seed = &seed
	require.NoError(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "missing.env")))
	assert.Nil(t, cfg.Run.Seed)
}

func TestInputs(t *testing.T) {
	cfg := Default()
	cfg.Scenario = "LOW"

	in, err := cfg.Inputs()
	require.NoError(t, err)
	assert.Equal(t, "low", in.Scenario.Name)
	assert.Equal(t, 0.20, in.Loadings.ExpenseRatio)
	assert.Equal(t, 100.0, in.Factor)
	assert.Equal(t, 1.2, in.Market.PriceSensitivity)

	ec := cfg.EngineConfig()
	assert.Equal(t, cfg.Run.InitialCapital, ec.InitialCapital)
	assert.Equal(t, 12, ec.MaxPeriods)
}

func TestOpenJournal(t *testing.T) {
	dir := t.TempDir()

	cfg := Default()
	j, err := cfg.OpenJournal()
	require.NoError(t, err)
	assert.NoError(t, j.Close())

	cfg.Journal = JournalConfig{
		Type:        "csv",
		PeriodsFile: filepath.Join(dir, "periods.csv"),
		CapitalFile: filepath.Join(dir, "capital.csv"),
	}
	j, err = cfg.OpenJournal()
	require.NoError(t, err)
	assert.IsType(t, &journal.CSV{}, j)
	require.NoError(t, j.Close())

	cfg.Journal = JournalConfig{Type: "sqlite", DBPath: filepath.Join(dir, "runs.db")}
	j, err = cfg.OpenJournal()
	require.NoError(t, err)
	assert.IsType(t, &journal.SQLite{}, j)
	require.NoError(t, j.Close())
}

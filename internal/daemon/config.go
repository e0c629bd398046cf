// Package daemon holds runtime configuration for the portal daemon.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full daemon configuration, loaded from a TOML file.
type Config struct {
	Env     string        `toml:"env"` // "dev" or "prod"; controls log format
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Ledger  LedgerConfig  `toml:"ledger"`
	Metrics MetricsConfig `toml:"metrics"`
	Goal    GoalConfig    `toml:"goal"`
}

// APIConfig controls the HTTP listener.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the host:port listen address.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig controls the accounting record file and the page directory.
type StorageConfig struct {
	DataFile string `toml:"data_file"`
	PagesDir string `toml:"pages_dir"`
}

// LedgerConfig controls the study-session ledger.
type LedgerConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // defaults next to the data file
}

// MetricsConfig controls the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// GoalConfig controls the study-challenge goal shown on the portal.
type GoalConfig struct {
	TargetCoins int64 `toml:"target_coins"`
}

// DefaultConfig returns the portal defaults.
func DefaultConfig() Config {
	return Config{
		Env: "dev",
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Storage: StorageConfig{
			DataFile: "bimalism_data.json",
			PagesDir: "pages",
		},
		Ledger: LedgerConfig{
			Enabled: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Goal: GoalConfig{
			TargetCoins: 30, // one special gift per 30 coins
		},
	}
}

// LoadConfig reads the config file at path, filling unset fields with
// defaults. A missing file is not an error: the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Goal.TargetCoins <= 0 {
		cfg.Goal.TargetCoins = DefaultConfig().Goal.TargetCoins
	}
	return cfg, nil
}

// Save writes the config as TOML, creating parent directories as needed.
func (c Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}

// LedgerDir resolves where the session ledger lives: the configured dir, or
// a "ledger" directory beside the data file.
func (c Config) LedgerDir() string {
	if c.Ledger.Dir != "" {
		return c.Ledger.Dir
	}
	return filepath.Join(filepath.Dir(c.Storage.DataFile), "ledger")
}

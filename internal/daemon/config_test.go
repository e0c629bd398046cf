package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 8080 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 8080)
	}
	if cfg.Storage.DataFile != "bimalism_data.json" {
		t.Errorf("Storage.DataFile = %q, want %q", cfg.Storage.DataFile, "bimalism_data.json")
	}
	if !cfg.Ledger.Enabled {
		t.Error("Ledger.Enabled should be true by default")
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be true by default")
	}
	if cfg.Goal.TargetCoins != 30 {
		t.Errorf("Goal.TargetCoins = %d, want 30", cfg.Goal.TargetCoins)
	}
}

func TestAPIConfigAddr(t *testing.T) {
	c := APIConfig{Host: "0.0.0.0", Port: 9090}
	if got := c.Addr(); got != "0.0.0.0:9090" {
		t.Errorf("Addr() = %q, want %q", got, "0.0.0.0:9090")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.toml"))
	if err != nil {
		t.Fatalf("missing config file should yield defaults, got %v", err)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.API.Port)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.API.Port = 9999
	cfg.Storage.DataFile = "/var/lib/portal/data.json"
	cfg.Ledger.Enabled = false
	cfg.Goal.TargetCoins = 50

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.API.Port != 9999 {
		t.Errorf("Port = %d, want 9999", got.API.Port)
	}
	if got.Storage.DataFile != "/var/lib/portal/data.json" {
		t.Errorf("DataFile = %q", got.Storage.DataFile)
	}
	if got.Ledger.Enabled {
		t.Error("Ledger.Enabled should round-trip as false")
	}
	if got.Goal.TargetCoins != 50 {
		t.Errorf("TargetCoins = %d, want 50", got.Goal.TargetCoins)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api = {{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("invalid TOML should be an error, not a silent default")
	}
}

func TestLedgerDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.DataFile = "/data/portal/bimalism_data.json"
	if got := cfg.LedgerDir(); got != "/data/portal/ledger" {
		t.Errorf("LedgerDir() = %q, want %q", got, "/data/portal/ledger")
	}

	cfg.Ledger.Dir = "/elsewhere"
	if got := cfg.LedgerDir(); got != "/elsewhere" {
		t.Errorf("LedgerDir() = %q, want %q", got, "/elsewhere")
	}
}

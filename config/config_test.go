package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "REPORT_WORKERS", "TOPOLOGY_DIR", "API_KEY"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8080" || cfg.DBDriver != "sqlite" || cfg.ReportWorkers != 4 || cfg.TopologyDir != "" {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REPORT_WORKERS", "9")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@h/db")
	t.Setenv("API_KEY", "k")
	cfg := Load()
	if cfg.ReportWorkers != 9 || cfg.DBDriver != "postgres" {
		t.Fatalf("overrides = %+v", cfg)
	}
	r := cfg.Redacted()
	if r.DatabaseURL != "***" || r.APIKey != "***" || cfg.DatabaseURL == "***" {
		t.Fatalf("redaction = %+v / %+v", r, cfg)
	}

	t.Setenv("REPORT_WORKERS", "-2")
	if Load().ReportWorkers != 4 {
		t.Fatal("non-positive workers should fall back to 4")
	}
}

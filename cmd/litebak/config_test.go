package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "litebak.yaml")
	body := `source: /data/app.db
destination: /backups/app.db
source_name: main
pages_per_step: 32
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Source != "/data/app.db" || cfg.Destination != "/backups/app.db" {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if cfg.PagesPerStep != 32 {
		t.Fatalf("expected 32 pages per step, got %d", cfg.PagesPerStep)
	}
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "litebak.yaml")
	if err := os.WriteFile(path, []byte("source: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestConfigMergePrecedence(t *testing.T) {
	cfg := defaultConfig()
	cfg = cfg.merge(config{Source: "/a.db", Destination: "/b.db", PagesPerStep: 16})
	cfg = cfg.merge(config{Destination: "/c.db", PagesPerStep: -1})
	if cfg.Source != "/a.db" {
		t.Fatalf("source overwritten: %q", cfg.Source)
	}
	if cfg.Destination != "/c.db" {
		t.Fatalf("expected later destination to win, got %q", cfg.Destination)
	}
	if cfg.PagesPerStep != -1 {
		t.Fatalf("expected -1 pages per step, got %d", cfg.PagesPerStep)
	}
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (config{}).validate(); err == nil {
		t.Fatalf("expected missing-source error")
	}
	if err := (config{Source: "/a.db"}).validate(); err == nil {
		t.Fatalf("expected missing-destination error")
	}
	if err := (config{Source: "/a.db", Destination: "/a.db"}).validate(); err == nil {
		t.Fatalf("expected same-path error")
	}
}

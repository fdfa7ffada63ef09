package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MODEL_STORE", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Fatalf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Model.Store != ModelStoreFile {
		t.Fatalf("store = %q, want file", cfg.Model.Store)
	}
	if cfg.Model.Trees != 50 {
		t.Fatalf("trees = %d, want 50", cfg.Model.Trees)
	}
	if cfg.Server.BodyLimit != 10*1024*1024 {
		t.Fatalf("body limit = %d", cfg.Server.BodyLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MODEL_STORE", "sqlite")
	t.Setenv("MODEL_TREES", "7")
	t.Setenv("MODEL_SEED", "99")
	t.Setenv("GIGACHAT_API_KEY", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model.Store != ModelStoreSQLite || cfg.Model.Trees != 7 || cfg.Model.Seed != 99 {
		t.Fatalf("unexpected model config: %+v", cfg.Model)
	}
	if !cfg.GigaChat.Enabled() {
		t.Fatalf("advisor should be enabled when API key is set")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"unknown store": {"MODEL_STORE", "redis"},
		"zero trees":    {"MODEL_TREES", "-3"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}

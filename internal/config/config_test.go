package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("default port = %d", cfg.Server.Port)
	}
	if !cfg.Square.TestMode {
		t.Fatal("provider test mode should default on")
	}
	if cfg.Data.MockSeed != 1 {
		t.Fatalf("default mock seed = %d", cfg.Data.MockSeed)
	}
	if cfg.App.LogLevel != "info" {
		t.Fatalf("default log level = %q", cfg.App.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("USE_MOCK_LLM", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Server.Address(); got != "127.0.0.1:9999" {
		t.Fatalf("address = %q", got)
	}
	if !cfg.LLM.Mock {
		t.Fatal("USE_MOCK_LLM=true should enable the mock assistant")
	}
}

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr :8080, got %s", cfg.ListenAddr)
	}
	if cfg.DatabasePath != "dashboard.db" {
		t.Fatalf("expected default db path, got %s", cfg.DatabasePath)
	}
	if cfg.YelpBaseURL != "https://api.yelp.com/v3" {
		t.Fatalf("expected production yelp url, got %s", cfg.YelpBaseURL)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("YELP_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Fatalf("expected :9999, got %s", cfg.ListenAddr)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("expected json format, got %s", cfg.LogFormat)
	}
	if cfg.YelpAPIKey != "test-key" {
		t.Fatalf("expected api key from env, got %s", cfg.YelpAPIKey)
	}
}

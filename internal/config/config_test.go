package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "EMOTION_PROVIDER", "ANALYZE_MIN_WORDS", "ANALYZE_EXPOSE_ERRORS", "WATSON_VERSION", "WATSON_TIMEOUT", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Analysis.Provider != ProviderWatson {
		t.Fatalf("unexpected provider: %s", cfg.Analysis.Provider)
	}
	if cfg.Analysis.MinWords != 10 {
		t.Fatalf("unexpected min words: %d", cfg.Analysis.MinWords)
	}
	if !cfg.Analysis.ExposeErrors {
		t.Fatal("expected internal errors to be exposed by default")
	}
	if cfg.Watson.Version != "2021-08-01" {
		t.Fatalf("unexpected watson version: %s", cfg.Watson.Version)
	}
	if cfg.Watson.Timeout != 0 {
		t.Fatalf("expected no upstream timeout, got %s", cfg.Watson.Timeout)
	}
	if cfg.Log.Format != "text" {
		t.Fatalf("unexpected log format: %s", cfg.Log.Format)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("EMOTION_PROVIDER", "ARK")
	t.Setenv("ANALYZE_MIN_WORDS", "0")
	t.Setenv("ANALYZE_EXPOSE_ERRORS", "false")
	t.Setenv("WATSON_TIMEOUT", "15s")
	t.Setenv("WATSON_API_KEY", "key")
	t.Setenv("WATSON_URL", "https://nlu.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Analysis.Provider != ProviderArk {
		t.Fatalf("unexpected provider: %s", cfg.Analysis.Provider)
	}
	if cfg.Analysis.MinWords != 0 {
		t.Fatalf("unexpected min words: %d", cfg.Analysis.MinWords)
	}
	if cfg.Analysis.ExposeErrors {
		t.Fatal("expected internal errors to be hidden")
	}
	if cfg.Watson.Timeout != 15*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Watson.Timeout)
	}
	if !cfg.Watson.Enabled() {
		t.Fatal("expected watson to be enabled")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"EMOTION_PROVIDER":       "openai",
		"ANALYZE_MIN_WORDS":      "-1",
		"ANALYZE_EXPOSE_ERRORS":  "maybe",
		"ANALYZE_MAX_BODY_BYTES": "0",
		"WATSON_TIMEOUT":         "soon",
		"PORT":                   "80 80",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestAIConfigEnabled(t *testing.T) {
	if (AIConfig{APIKey: "k"}).Enabled() {
		t.Fatal("model is required")
	}
	if !(AIConfig{APIKey: "k", Model: "m"}).Enabled() {
		t.Fatal("api key + model should be enough")
	}
	if !(AIConfig{AccessKey: "a", SecretKey: "s", Model: "m"}).Enabled() {
		t.Fatal("ak/sk + model should be enough")
	}
}

package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Companion.DisplayName != DefaultDisplayName {
		t.Errorf("expected DisplayName=%s, got %s", DefaultDisplayName, cfg.Companion.DisplayName)
	}
	if !cfg.Companion.GreetingEnabled {
		t.Error("expected GreetingEnabled=true by default")
	}
	if cfg.Companion.CommentProbability != DefaultCommentProbability {
		t.Errorf("expected CommentProbability=%v, got %v", DefaultCommentProbability, cfg.Companion.CommentProbability)
	}
	if cfg.LLM.Model != "gemini-2.5-flash" {
		t.Errorf("expected Model=gemini-2.5-flash, got %s", cfg.LLM.Model)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.LLM.APIKey = "test-key"
	cfg.Companion.DisplayName = "Poe"
	cfg.Companion.GreetingEnabled = false

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.LLM.APIKey != "test-key" {
		t.Errorf("expected APIKey=test-key, got %s", loaded.LLM.APIKey)
	}
	if loaded.Companion.DisplayName != "Poe" {
		t.Errorf("expected DisplayName=Poe, got %s", loaded.Companion.DisplayName)
	}
	if loaded.Companion.GreetingEnabled {
		t.Error("expected explicit GreetingEnabled=false to survive a round trip")
	}
}

func TestConfig_LoadMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Companion.DisplayName != DefaultDisplayName {
		t.Errorf("expected defaults, got DisplayName=%s", cfg.Companion.DisplayName)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Errorf("expected APIKey=env-key, got %s", cfg.LLM.APIKey)
	}
}

func TestConfig_NormalizeCoercesProbability(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, DefaultCommentProbability},
		{"negative", -0.5, DefaultCommentProbability},
		{"below minimum", 0.005, DefaultCommentProbability},
		{"above maximum", 1.5, DefaultCommentProbability},
		{"at minimum", 0.01, 0.01},
		{"at maximum", 1.0, 1.0},
		{"in range", 0.25, 0.25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Companion.CommentProbability = tc.in
			cfg.Normalize()
			if cfg.Companion.CommentProbability != tc.want {
				t.Errorf("Normalize(%v): expected %v, got %v", tc.in, tc.want, cfg.Companion.CommentProbability)
			}
		})
	}
}

func TestConfig_NormalizeCoercesEmptyName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Companion.DisplayName = "   "
	cfg.Normalize()
	if cfg.Companion.DisplayName != DefaultDisplayName {
		t.Errorf("expected empty name coerced to %s, got %q", DefaultDisplayName, cfg.Companion.DisplayName)
	}
}

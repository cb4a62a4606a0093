package llm

import (
	"errors"
	"testing"
)

// clearLLMEnv blanks every variable the config reads so the host
// environment cannot leak into a test.
func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATAPATH_LLM_PROVIDER",
		"DATAPATH_GEMINI_API_KEY", "DATAPATH_GEMINI_MODEL",
		"DATAPATH_ANTHROPIC_API_KEY", "DATAPATH_ANTHROPIC_MODEL",
		"DATAPATH_OPENAI_API_KEY", "DATAPATH_OPENAI_MODEL", "DATAPATH_OPENAI_BASE_URL",
		"DATAPATH_OPENROUTER_API_KEY", "DATAPATH_OPENROUTER_MODEL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("DATAPATH_GEMINI_API_KEY", "g-key")
	t.Setenv("DATAPATH_GEMINI_MODEL", "gemini-pro")

	cfg := ConfigFromEnv()
	if cfg.Provider != "gemini" {
		t.Errorf("provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Gemini.APIKey != "g-key" || cfg.Gemini.Model != "gemini-pro" {
		t.Errorf("gemini config = %+v", cfg.Gemini)
	}
}

func TestResolveConfig(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		clearLLMEnv(t)
		_, err := ResolveConfig()
		if !errors.Is(err, ErrNoProvider) {
			t.Fatalf("expected ErrNoProvider, got %v", err)
		}
	})

	t.Run("default provider key", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("DATAPATH_GEMINI_API_KEY", "g")
		cfg, err := ResolveConfig()
		if err != nil || cfg.Provider != "gemini" {
			t.Fatalf("got %+v, %v", cfg, err)
		}
	})

	t.Run("discovered key", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("ANTHROPIC_API_KEY", "a")
		cfg, err := ResolveConfig()
		if err != nil || cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "a" {
			t.Fatalf("got %+v, %v", cfg, err)
		}
	})

	t.Run("explicit provider missing key", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("DATAPATH_LLM_PROVIDER", "openai")
		t.Setenv("GEMINI_API_KEY", "g")
		if _, err := ResolveConfig(); err == nil {
			t.Fatal("explicit provider without its key should fail")
		}
	})

	t.Run("explicit mock", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("DATAPATH_LLM_PROVIDER", "mock")
		cfg, err := ResolveConfig()
		if err != nil || cfg.Provider != "mock" {
			t.Fatalf("got %+v, %v", cfg, err)
		}
	})
}

func TestDiscoverConfig_Priority(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENAI_API_KEY", "o")
	t.Setenv("GEMINI_API_KEY", "g")

	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "gemini" {
		t.Fatalf("expected gemini to win, got %+v", cfg)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
llm:
  model: mistral
matching:
  threshold: 0.7
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.LLM.Model != "mistral" {
		t.Errorf("llm model = %q, want mistral", cfg.LLM.Model)
	}
	if cfg.Matching.Threshold != 0.7 {
		t.Errorf("matching threshold = %v, want 0.7", cfg.Matching.Threshold)
	}
	// Unset sections fall back to defaults.
	if cfg.LLM.Provider != ProviderOllama {
		t.Errorf("llm provider = %q, want ollama", cfg.LLM.Provider)
	}
	if cfg.Inference.MaxIterations != 3 {
		t.Errorf("inference max_iterations = %d, want 3", cfg.Inference.MaxIterations)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "logging: [oops")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("error = %v, want parse config", err)
	}
}

func TestLoadValidatesRanges(t *testing.T) {
	path := writeConfig(t, `
matching:
  threshold: 2.5
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for threshold outside [-1, 1]")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Logging.Level != "info" {
		t.Errorf("default logging level: got %q", cfg.Logging.Level)
	}
	if cfg.Embedding.Model != DefaultEmbeddingModel {
		t.Errorf("default embedding model: got %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimensions != 768 {
		t.Errorf("default embedding dimensions: got %d", cfg.Embedding.Dimensions)
	}
	if cfg.LLM.BaseURL != DefaultOllamaBaseURL {
		t.Errorf("default base url: got %q", cfg.LLM.BaseURL)
	}
	if cfg.Matching.Threshold != 0.5 {
		t.Errorf("default matching threshold: got %v", cfg.Matching.Threshold)
	}
	if cfg.Inference.ConfidenceThreshold != 0.15 {
		t.Errorf("default confidence threshold: got %v", cfg.Inference.ConfidenceThreshold)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.LLM.Provider = ProviderOpenAI
	cfg.LLM.Model = "gpt-4o-mini"
	cfg.Matching.Threshold = 0.9
	ApplyDefaults(cfg)
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("explicit model overwritten: got %q", cfg.LLM.Model)
	}
	if cfg.Matching.Threshold != 0.9 {
		t.Errorf("explicit threshold overwritten: got %v", cfg.Matching.Threshold)
	}
	// The Ollama base URL default only applies to the Ollama provider.
	if cfg.LLM.BaseURL != "" {
		t.Errorf("openai provider should not default base url: got %q", cfg.LLM.BaseURL)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ONTOLOGY_LLM_MODEL", "qwen2.5")
	t.Setenv("ONTOLOGY_MATCH_THRESHOLD", "0.65")
	t.Setenv("ONTOLOGY_INFER_MAX_ITERATIONS", "7")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Model != "qwen2.5" {
		t.Errorf("llm model = %q, want qwen2.5", cfg.LLM.Model)
	}
	if cfg.Matching.Threshold != 0.65 {
		t.Errorf("matching threshold = %v, want 0.65", cfg.Matching.Threshold)
	}
	if cfg.Inference.MaxIterations != 7 {
		t.Errorf("inference max_iterations = %d, want 7", cfg.Inference.MaxIterations)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
llm:
  model: from-file
`)
	t.Setenv("ONTOLOGY_LLM_MODEL", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.Model != "from-env" {
		t.Errorf("llm model = %q, environment should win over file", cfg.LLM.Model)
	}
}

func TestOpenAIKeyFallback(t *testing.T) {
	t.Setenv("ONTOLOGY_LLM_PROVIDER", ProviderOpenAI)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("api key = %q, want OPENAI_API_KEY fallback", cfg.LLM.APIKey)
	}
}

func TestValidateOpenAIRequiresKey(t *testing.T) {
	cfg := Default()
	cfg.LLM.Provider = ProviderOpenAI
	cfg.LLM.APIKey = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error: openai provider without api key")
	}
	if !strings.Contains(err.Error(), "llm.api_key") {
		t.Errorf("error = %v, want mention of llm.api_key", err)
	}
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := Default()
	cfg.LLM.Provider = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestMatchingOptionsBridge(t *testing.T) {
	c := MatchingConfig{Threshold: 0.42, MaxCombinations: 5}
	opts := c.Options()
	if opts.Threshold != 0.42 {
		t.Errorf("threshold = %v, want 0.42", opts.Threshold)
	}
	if opts.N != 5 {
		t.Errorf("n = %d, want 5", opts.N)
	}
}

func TestInferenceOptionsBridge(t *testing.T) {
	c := InferenceConfig{ConfidenceThreshold: 0.2, MaxIterations: 4}
	opts := c.Options()
	if opts.ConfidenceThreshold != 0.2 {
		t.Errorf("confidence threshold = %v, want 0.2", opts.ConfidenceThreshold)
	}
	if opts.MaxIterations != 4 {
		t.Errorf("max iterations = %d, want 4", opts.MaxIterations)
	}
}

func TestLLMTimeout(t *testing.T) {
	c := LLMConfig{TimeoutSeconds: 45}
	if got := c.Timeout(); got != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", got)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("CONFIG_TEST_STRING", "value")
	t.Setenv("CONFIG_TEST_INT", "12")
	t.Setenv("CONFIG_TEST_BAD_INT", "twelve")
	t.Setenv("CONFIG_TEST_FLOAT", "0.25")
	t.Setenv("CONFIG_TEST_BOOL", "true")
	t.Setenv("CONFIG_TEST_BAD_BOOL", "yes")

	if got := GetEnv("CONFIG_TEST_STRING"); got != "value" {
		t.Errorf("GetEnv = %q", got)
	}
	if got := GetEnv("CONFIG_TEST_UNSET"); got != "" {
		t.Errorf("GetEnv unset = %q, want empty", got)
	}
	if got := GetEnvString("CONFIG_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnvString unset = %q", got)
	}
	if got := GetEnvInt("CONFIG_TEST_INT", 0); got != 12 {
		t.Errorf("GetEnvInt = %d", got)
	}
	if got := GetEnvInt("CONFIG_TEST_BAD_INT", 3); got != 3 {
		t.Errorf("GetEnvInt unparseable = %d, want default", got)
	}
	if got := GetEnvFloat("CONFIG_TEST_FLOAT", 0); got != 0.25 {
		t.Errorf("GetEnvFloat = %v", got)
	}
	if got := GetEnvBool("CONFIG_TEST_BOOL", false); !got {
		t.Error("GetEnvBool true literal not honored")
	}
	if got := GetEnvBool("CONFIG_TEST_BAD_BOOL", false); got {
		t.Error("GetEnvBool should ignore non-literal values")
	}
}

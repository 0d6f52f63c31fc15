// Package config loads runtime configuration for the ontology engines from a
// YAML file, a .env file, and process environment variables, in that order of
// precedence (environment wins).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/000alen/ontology/pkg/causal"
	"github.com/000alen/ontology/pkg/matching"
	"github.com/000alen/ontology/pkg/validation"
)

// Provider names accepted by LLMConfig.Provider.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config holds all runtime configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Matching  MatchingConfig  `yaml:"matching"`
	Inference InferenceConfig `yaml:"inference"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// EmbeddingConfig holds embedding model settings.
type EmbeddingConfig struct {
	Model string `yaml:"model"`
	// Dimensions is the embedding vector width the model produces.
	Dimensions int `yaml:"dimensions" validate:"omitempty,gt=0"`
	// MaxConcurrent bounds in-flight embedding requests per client.
	MaxConcurrent int `yaml:"max_concurrent" validate:"omitempty,gt=0"`
}

// LLMConfig holds provider settings for suggestion and embedding calls.
type LLMConfig struct {
	Provider string `yaml:"provider" validate:"omitempty,oneof=ollama openai"`
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	// Model is the chat model used for property suggestions.
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"omitempty,gt=0"`
}

// Timeout returns the per-request timeout as a duration.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MatchingConfig holds subgraph matching settings.
type MatchingConfig struct {
	// Threshold is the minimum cosine similarity for a candidate pairing.
	Threshold float64 `yaml:"threshold" validate:"gte=-1,lte=1"`
	// MaxCombinations caps assignments drawn from each candidate product.
	MaxCombinations int `yaml:"max_combinations" validate:"omitempty,gt=0"`
}

// Options returns the matcher options this section describes. Collaborators
// (events, metrics) are left for the caller to attach.
func (c MatchingConfig) Options() matching.Options {
	return matching.Options{
		N:         c.MaxCombinations,
		Threshold: c.Threshold,
	}
}

// InferenceConfig holds causal propagation settings.
type InferenceConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold" validate:"gte=0,lte=1"`
	MaxIterations       int     `yaml:"max_iterations" validate:"omitempty,gt=0"`
}

// Options returns the propagation options this section describes.
func (c InferenceConfig) Options() causal.Options {
	return causal.Options{
		ConfidenceThreshold: c.ConfidenceThreshold,
		MaxIterations:       c.MaxIterations,
	}
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// Load reads and parses the config file at path, applies defaults and
// environment overrides, and validates the result. Returns an error if the
// file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromEnv builds a configuration from defaults and environment variables
// alone, for deployments without a config file.
func FromEnv() (*Config, error) {
	cfg := Default()
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and cross-field rules.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	cv := validation.NewConfigValidator("config")
	if c.LLM.Provider == ProviderOpenAI {
		cv.Required("llm.api_key", c.LLM.APIKey)
	}
	return cv.Validate()
}

package config

import (
	"github.com/000alen/ontology/pkg/causal"
	"github.com/000alen/ontology/pkg/matching"
)

// Embedding and chat defaults target a local Ollama install.
const (
	DefaultEmbeddingModel      = "nomic-embed-text"
	DefaultEmbeddingDimensions = 768
	DefaultChatModel           = "llama3.1"
	DefaultOllamaBaseURL       = "http://localhost:11434"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = DefaultEmbeddingModel
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = DefaultEmbeddingDimensions
	}
	if cfg.Embedding.MaxConcurrent == 0 {
		cfg.Embedding.MaxConcurrent = 4
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = ProviderOllama
	}
	if cfg.LLM.BaseURL == "" && cfg.LLM.Provider == ProviderOllama {
		cfg.LLM.BaseURL = DefaultOllamaBaseURL
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultChatModel
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = 120
	}
	if cfg.Matching.Threshold == 0 {
		cfg.Matching.Threshold = matching.DefaultThreshold
	}
	if cfg.Matching.MaxCombinations == 0 {
		cfg.Matching.MaxCombinations = matching.DefaultN
	}
	if cfg.Inference.ConfidenceThreshold == 0 {
		cfg.Inference.ConfidenceThreshold = causal.DefaultConfidenceThreshold
	}
	if cfg.Inference.MaxIterations == 0 {
		cfg.Inference.MaxIterations = causal.DefaultMaxIterations
	}
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/000alen/ontology/pkg/logging"
)

// LoadDotenv loads a .env file from the working directory into the process
// environment. Missing files are fine; the process environment stands alone.
func LoadDotenv() {
	if err := godotenv.Load(); err != nil {
		logging.Debug("no .env file found, using process environment")
	}
}

// GetEnv returns the value of the environment variable, or "" when unset.
func GetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return ""
	}
	return value
}

// GetEnvString returns the environment variable or the default when unset.
func GetEnvString(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

// GetEnvInt returns the environment variable parsed as an int, or the default
// when unset or unparseable.
func GetEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetEnvFloat returns the environment variable parsed as a float64, or the
// default when unset or unparseable.
func GetEnvFloat(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetEnvBool returns the environment variable as a bool. Only the literals
// "true" and "false" are honored; anything else yields the default.
func GetEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	if value == "true" || value == "false" {
		return value == "true"
	}
	return defaultValue
}

// applyEnvOverrides layers environment variables over cfg. The API key also
// falls back to OPENAI_API_KEY so the standard variable keeps working.
func applyEnvOverrides(cfg *Config) {
	cfg.Logging.Level = GetEnvString("LOG_LEVEL", cfg.Logging.Level)

	cfg.Embedding.Model = GetEnvString("ONTOLOGY_EMBED_MODEL", cfg.Embedding.Model)
	cfg.Embedding.Dimensions = GetEnvInt("ONTOLOGY_EMBED_DIMENSIONS", cfg.Embedding.Dimensions)
	cfg.Embedding.MaxConcurrent = GetEnvInt("ONTOLOGY_EMBED_MAX_CONCURRENT", cfg.Embedding.MaxConcurrent)

	cfg.LLM.Provider = GetEnvString("ONTOLOGY_LLM_PROVIDER", cfg.LLM.Provider)
	cfg.LLM.BaseURL = GetEnvString("ONTOLOGY_LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = GetEnvString("ONTOLOGY_LLM_API_KEY", GetEnvString("OPENAI_API_KEY", cfg.LLM.APIKey))
	cfg.LLM.Model = GetEnvString("ONTOLOGY_LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.TimeoutSeconds = GetEnvInt("ONTOLOGY_LLM_TIMEOUT_SECONDS", cfg.LLM.TimeoutSeconds)

	cfg.Matching.Threshold = GetEnvFloat("ONTOLOGY_MATCH_THRESHOLD", cfg.Matching.Threshold)
	cfg.Matching.MaxCombinations = GetEnvInt("ONTOLOGY_MATCH_MAX_COMBINATIONS", cfg.Matching.MaxCombinations)

	cfg.Inference.ConfidenceThreshold = GetEnvFloat("ONTOLOGY_INFER_CONFIDENCE_THRESHOLD", cfg.Inference.ConfidenceThreshold)
	cfg.Inference.MaxIterations = GetEnvInt("ONTOLOGY_INFER_MAX_ITERATIONS", cfg.Inference.MaxIterations)
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding file and default values.
const (
	EnvAPIBaseURL      = "REVIEWCHAT_API_BASE_URL"
	EnvSystemMessage   = "REVIEWCHAT_SYSTEM_MESSAGE"
	EnvLanguage        = "REVIEWCHAT_LANGUAGE"
	EnvTemperature     = "REVIEWCHAT_TEMPERATURE"
	EnvRetries         = "REVIEWCHAT_RETRIES"
	EnvTimeoutMS       = "REVIEWCHAT_TIMEOUT_MS"
	EnvDebug           = "REVIEWCHAT_DEBUG"
	EnvModel           = "REVIEWCHAT_MODEL"
	EnvMaxTokens       = "REVIEWCHAT_MAX_TOKENS"
	EnvResponseTokens  = "REVIEWCHAT_RESPONSE_TOKENS"
	EnvKnowledgeCutoff = "REVIEWCHAT_KNOWLEDGE_CUTOFF"
)

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), and environment variables, in increasing precedence.
// A .env file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	o := &c.Options
	m := &c.Model

	o.APIBaseURL = envOrDefault(getenv, EnvAPIBaseURL, o.APIBaseURL)
	o.SystemMessage = envOrDefault(getenv, EnvSystemMessage, o.SystemMessage)
	o.Language = envOrDefault(getenv, EnvLanguage, o.Language)
	m.Model = envOrDefault(getenv, EnvModel, m.Model)
	m.TokenLimits.KnowledgeCutoff = envOrDefault(getenv, EnvKnowledgeCutoff, m.TokenLimits.KnowledgeCutoff)

	var err error
	if o.Temperature, err = envFloat(getenv, EnvTemperature, o.Temperature); err != nil {
		return err
	}
	if o.Retries, err = envInt(getenv, EnvRetries, o.Retries); err != nil {
		return err
	}
	if o.TimeoutMS, err = envInt(getenv, EnvTimeoutMS, o.TimeoutMS); err != nil {
		return err
	}
	if o.Debug, err = envBool(getenv, EnvDebug, o.Debug); err != nil {
		return err
	}
	if m.TokenLimits.MaxTokens, err = envInt(getenv, EnvMaxTokens, m.TokenLimits.MaxTokens); err != nil {
		return err
	}
	if m.TokenLimits.ResponseTokens, err = envInt(getenv, EnvResponseTokens, m.TokenLimits.ResponseTokens); err != nil {
		return err
	}
	return nil
}

func envOrDefault(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt(getenv func(string) string, key string, defaultValue int) (int, error) {
	value := getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, value)
	}
	return i, nil
}

func envFloat(getenv func(string) string, key string, defaultValue float64) (float64, error) {
	value := getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", key, value)
	}
	return f, nil
}

func envBool(getenv func(string) string, key string, defaultValue bool) (bool, error) {
	value := getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, value)
	}
	return b, nil
}

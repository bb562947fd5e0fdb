// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Valkey (Redis-compatible cache). An empty host disables caching.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	CacheTTL       time.Duration

	// AI provider settings
	AIProvider string // "openai", "gemini", "claude", "mistral"

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	GeminiKey        string
	GeminiModel      string
	GeminiModelImage string
	GeminiBaseURL    string

	ClaudeKey     string
	ClaudeModel   string
	ClaudeBaseURL string

	MistralKey     string
	MistralModel   string
	MistralBaseURL string

	// AIRateLimit is the number of AI-backed requests allowed per IP per minute.
	AIRateLimit int

	// S3-compatible object storage for published exports. Publishing is
	// disabled unless endpoint and credentials are set.
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string
	S3LinkTTL   time.Duration

	// Export pipeline
	ExportSettleDelay time.Duration
	ExportWorkers     int

	// AutosaveDelay is the debounce before an edit is marked as saved.
	AutosaveDelay time.Duration

	// SessionIdleTTL is how long an untouched editing session is kept.
	SessionIdleTTL time.Duration
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if a value is
// malformed or if critical values are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AIProvider: envOrDefault("AI_PROVIDER", "gemini"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOrDefault("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL: envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		GeminiKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      envOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiModelImage: os.Getenv("GEMINI_MODEL_IMAGE"),
		GeminiBaseURL:    os.Getenv("GEMINI_BASE_URL"),

		ClaudeKey:     os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:   envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-5"),
		ClaudeBaseURL: envOrDefault("CLAUDE_BASE_URL", "https://api.anthropic.com"),

		MistralKey:     os.Getenv("MISTRAL_API_KEY"),
		MistralModel:   envOrDefault("MISTRAL_MODEL", "mistral-large-latest"),
		MistralBaseURL: envOrDefault("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "fsn1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "slidesmith-exports"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	var err error
	if cfg.CacheTTL, err = envDuration("CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.S3LinkTTL, err = envDuration("S3_LINK_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ExportSettleDelay, err = envDuration("EXPORT_SETTLE_DELAY", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.AutosaveDelay, err = envDuration("AUTOSAVE_DELAY", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTTL, err = envDuration("SESSION_IDLE_TTL", 6*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ExportWorkers, err = envInt("EXPORT_WORKERS", 1); err != nil {
		return nil, err
	}
	if cfg.AIRateLimit, err = envInt("AI_RATE_LIMIT", 20); err != nil {
		return nil, err
	}
	if cfg.ExportWorkers < 1 {
		return nil, fmt.Errorf("EXPORT_WORKERS must be at least 1, got %d", cfg.ExportWorkers)
	}

	if cfg.Env == "production" && cfg.activeKey() == "" {
		return nil, fmt.Errorf("%s_API_KEY must be set in production", providerEnvPrefix(cfg.AIProvider))
	}

	return cfg, nil
}

func (c *Config) activeKey() string {
	switch c.AIProvider {
	case "openai":
		return c.OpenAIKey
	case "gemini":
		return c.GeminiKey
	case "claude":
		return c.ClaudeKey
	case "mistral":
		return c.MistralKey
	}
	return ""
}

func providerEnvPrefix(name string) string {
	switch name {
	case "openai":
		return "OPENAI"
	case "claude":
		return "CLAUDE"
	case "mistral":
		return "MISTRAL"
	}
	return "GEMINI"
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether a Valkey host is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// PublishEnabled reports whether S3 publishing of exports is configured.
func (c *Config) PublishEnabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything loaded from the environment.
type Config struct {
	// HomeDir is the root under which models/data/logs live.
	HomeDir string

	// CatalogPath points at the models.yaml catalog.
	CatalogPath string

	// API keys for cloud providers. Empty means the matching cloud
	// provider is unavailable.
	OpenAIKey string
	GeminiKey string

	// Local inference server endpoints. Empty means the matching
	// local provider is not installed.
	WhisperServerURL string
	LlamaEmbedURL    string
	LlamaGenURL      string

	// Development switches logging to human-readable output.
	Development bool
}

// LoadEnv loads environment variables from a .env file if one exists.
// Missing files are fine; system-wide environment still applies.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// FromEnv builds the configuration from the process environment,
// validating API key formats fail-fast.
func FromEnv() (*Config, error) {
	cfg := &Config{
		HomeDir:     strings.TrimSpace(os.Getenv("AIHUB_HOME")),
		CatalogPath: strings.TrimSpace(os.Getenv("AIHUB_CATALOG")),
		OpenAIKey:   strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		GeminiKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Development: os.Getenv("AIHUB_ENV") != "production",

		WhisperServerURL: strings.TrimSpace(os.Getenv("AIHUB_WHISPER_SERVER")),
		LlamaEmbedURL:    strings.TrimSpace(os.Getenv("AIHUB_LLAMA_EMBED_SERVER")),
		LlamaGenURL:      strings.TrimSpace(os.Getenv("AIHUB_LLAMA_GEN_SERVER")),
	}

	if cfg.HomeDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("AIHUB_HOME is unset and no home directory: %w", err)
		}
		cfg.HomeDir = filepath.Join(home, ".aihub")
	}
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = filepath.Join(cfg.HomeDir, "models.yaml")
	}

	if cfg.OpenAIKey != "" {
		if !strings.HasPrefix(cfg.OpenAIKey, "sk-") {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
		}
		if len(cfg.OpenAIKey) < 20 {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: too short")
		}
	}

	if cfg.GeminiKey != "" {
		if !strings.HasPrefix(cfg.GeminiKey, "AIza") {
			return nil, fmt.Errorf("invalid GEMINI_API_KEY format: must start with 'AIza'")
		}
		if len(cfg.GeminiKey) < 30 {
			return nil, fmt.Errorf("invalid GEMINI_API_KEY format: too short")
		}
	}

	return cfg, nil
}

// InitializeConfig loads the .env file and builds the configuration.
// This is the main entry point for configuration loading.
func InitializeConfig() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	return cfg, nil
}

package app

import (
	"context"
	"database/sql"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"aihub/internal/app/engine/backend"
	"aihub/internal/app/engine/embedding"
	"aihub/internal/app/engine/generation"
	"aihub/internal/app/engine/transcription"
	"aihub/internal/app/language"
	"aihub/internal/app/logging"
	appprovider "aihub/internal/app/provider"
	"aihub/internal/app/provider/cloud"
	"aihub/internal/app/provider/local"
	"aihub/internal/app/registry"
	"aihub/internal/app/resolver"
	"aihub/internal/app/settings"
	"aihub/internal/app/storage"
	"aihub/internal/config"
)

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.NewLogger(cfg.Development)
}

func provideStorage(cfg *config.Config) (*storage.LocalStorage, error) {
	return storage.NewLocalStorage(cfg.HomeDir)
}

func provideRegistry(cfg *config.Config, st *storage.LocalStorage) (*registry.CatalogRegistry, error) {
	return registry.NewCatalogRegistry(cfg.CatalogPath, st.ModelsDir())
}

func provideDB(st *storage.LocalStorage) (*sql.DB, func(), error) {
	db, err := sql.Open("sqlite3", filepath.Join(st.DataDir(), "settings.db"))
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}

func provideSettingsStore(db *sql.DB) (*settings.SQLiteStore, error) {
	return settings.NewSQLiteStore(db)
}

func providePromRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func provideMetrics(reg *prometheus.Registry) *appprovider.Metrics {
	return appprovider.NewMetrics(reg)
}

// provideEngines builds an engine per configured local inference
// server. Engines start unloaded; loading happens on demand.
func provideEngines(cfg *config.Config, reg *registry.CatalogRegistry, logger *zap.Logger) *Engines {
	engines := &Engines{}

	if cfg.WhisperServerURL != "" {
		b := backend.NewWhisperServer(backend.WhisperServerConfig{BaseURL: cfg.WhisperServerURL})
		engines.Transcription = transcription.NewEngine(b, reg, "", logger)
	}
	if cfg.LlamaEmbedURL != "" {
		b := backend.NewLlamaEmbedding(backend.LlamaServerConfig{BaseURL: cfg.LlamaEmbedURL})
		engines.Embedding = embedding.NewEngine(b, reg, "", logger)
	}
	if cfg.LlamaGenURL != "" {
		b := backend.NewLlamaGeneration(backend.LlamaServerConfig{BaseURL: cfg.LlamaGenURL})
		engines.Generation = generation.NewEngine(b, reg, "", logger)
	}
	return engines
}

// provideProviders wires the local and cloud provider slots. A nil
// slot means that variant is not installed; the resolver reports it
// as such when selected.
func provideProviders(cfg *config.Config, engines *Engines, logger *zap.Logger) (resolver.Providers, error) {
	var providers resolver.Providers

	if engines.Transcription != nil {
		providers.LocalSpeechToText = local.NewSpeechToText(engines.Transcription, language.Auto)
	}
	if engines.Embedding != nil {
		providers.LocalEmbedding = local.NewEmbedding(engines.Embedding)
	}
	if engines.Generation != nil {
		providers.LocalTextGeneration = local.NewTextGeneration(engines.Generation)
	}

	if cfg.OpenAIKey != "" {
		client := openai.NewClient(cfg.OpenAIKey)
		providers.CloudSpeechToText = cloud.NewSpeechToText(client)
		providers.CloudEmbedding = cloud.NewEmbedding(client)
	}
	if cfg.GeminiKey != "" {
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: cfg.GeminiKey})
		if err != nil {
			return providers, err
		}
		providers.CloudTextGeneration = cloud.NewTextGeneration(client)
		providers.CloudVision = cloud.NewVision(client)
	}

	logger.Info("providers wired",
		zap.Bool("local_stt", providers.LocalSpeechToText != nil),
		zap.Bool("local_embedding", providers.LocalEmbedding != nil),
		zap.Bool("local_generation", providers.LocalTextGeneration != nil),
		zap.Bool("cloud_openai", cfg.OpenAIKey != ""),
		zap.Bool("cloud_gemini", cfg.GeminiKey != ""))

	return providers, nil
}

func provideResolver(store *settings.SQLiteStore, providers resolver.Providers) *resolver.Resolver {
	return resolver.New(store, providers)
}

package app

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"aihub/internal/app/engine/embedding"
	"aihub/internal/app/engine/generation"
	"aihub/internal/app/engine/transcription"
	"aihub/internal/app/language"
	"aihub/internal/app/provider"
	"aihub/internal/app/registry"
	"aihub/internal/app/resolver"
	"aihub/internal/app/settings"
	"aihub/internal/app/storage"
	"aihub/internal/config"
)

// Engines groups the local model engines. A nil engine means the
// matching inference server is not configured; the local provider for
// that capability is then unavailable.
type Engines struct {
	Embedding     *embedding.Engine
	Transcription *transcription.Engine
	Generation    *generation.Engine
}

// UnloadAll unloads whatever is loaded. Safe on nil engines.
func (e *Engines) UnloadAll() {
	if e.Embedding != nil {
		e.Embedding.Unload()
	}
	if e.Transcription != nil {
		e.Transcription.Unload()
	}
	if e.Generation != nil {
		e.Generation.Unload()
	}
}

// App is the assembled application: every capability wired to its
// providers, settings persisted, metrics registered.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	Storage      *storage.LocalStorage
	Registry     *registry.CatalogRegistry
	Store        *settings.SQLiteStore
	Detector     *language.Detector
	Metrics      *provider.Metrics
	PromRegistry *prometheus.Registry
	Engines      *Engines
	Resolver     *resolver.Resolver

	db *sql.DB
}

// NewApp assembles the App from its parts.
func NewApp(
	cfg *config.Config,
	logger *zap.Logger,
	store *storage.LocalStorage,
	reg *registry.CatalogRegistry,
	settingsStore *settings.SQLiteStore,
	detector *language.Detector,
	metrics *provider.Metrics,
	promRegistry *prometheus.Registry,
	engines *Engines,
	res *resolver.Resolver,
	db *sql.DB,
) *App {
	return &App{
		Config:       cfg,
		Logger:       logger,
		Storage:      store,
		Registry:     reg,
		Store:        settingsStore,
		Detector:     detector,
		Metrics:      metrics,
		PromRegistry: promRegistry,
		Engines:      engines,
		Resolver:     res,
		db:           db,
	}
}

// Close unloads models and releases the settings database.
func (a *App) Close() error {
	a.Engines.UnloadAll()
	_ = a.Logger.Sync()
	return a.db.Close()
}

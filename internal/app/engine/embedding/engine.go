package embedding

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"aihub/internal/app/engine"
	"aihub/internal/app/errors"
	"aihub/internal/app/model"
	"aihub/internal/app/registry"
)

// Backend is the opaque local inference runtime the engine drives. It
// is owned exclusively by one Engine and must not be shared.
type Backend interface {
	// Init prepares the backend with the model artifact at modelPath.
	Init(ctx context.Context, modelPath string) error

	// Embed produces the fixed-length vector for text. Only called
	// between a successful Init and Close.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Close releases the backend resources. Safe to call after a
	// failed Init.
	Close() error
}

// Engine owns the load/unload lifecycle of one local embedding backend
// and produces fixed-length vectors for text.
type Engine struct {
	lifecycle engine.Lifecycle

	backend  Backend
	registry registry.Registry
	modelID  string
	logger   *zap.Logger

	loaded model.Definition
}

// NewEngine creates an unloaded engine. modelID selects a specific
// catalog entry; when empty the first downloaded embedding model wins.
func NewEngine(backend Backend, reg registry.Registry, modelID string, logger *zap.Logger) *Engine {
	return &Engine{
		backend:  backend,
		registry: reg,
		modelID:  modelID,
		logger:   logger,
	}
}

// Load resolves the embedding model, checks its artifact is present and
// initializes the backend. Loading an already loaded engine is a no-op.
// On any failure the engine reverts to unloaded.
func (e *Engine) Load(ctx context.Context) error {
	return e.lifecycle.Load(func() error {
		def, err := e.resolveModel()
		if err != nil {
			return err
		}

		path := e.registry.DownloadPath(def)
		if !e.registry.IsDownloaded(def) {
			return errors.WithCause(errors.ErrModelNotDownloaded,
				errors.Newf("model %s has no artifact at %s", def.ID, path))
		}

		e.logger.Info("loading embedding model",
			zap.String("model", def.ID),
			zap.String("path", path))

		if err := e.backend.Init(ctx, path); err != nil {
			return errors.Wrapf(err, "backend init failed for model %s", def.ID)
		}

		e.loaded = def
		return nil
	})
}

// Unload releases the backend. It never fails and is a no-op when the
// engine is already unloaded.
func (e *Engine) Unload() {
	e.lifecycle.Unload(func() {
		if err := e.backend.Close(); err != nil {
			e.logger.Warn("embedding backend close failed", zap.Error(err))
		}
		e.loaded = model.Definition{}
	})
}

// IsLoaded reports whether the engine currently holds a loaded backend.
func (e *Engine) IsLoaded() bool {
	return e.lifecycle.IsLoaded()
}

// LoadedModel returns the definition of the loaded model, if any.
func (e *Engine) LoadedModel() (model.Definition, bool) {
	if !e.IsLoaded() {
		return model.Definition{}, false
	}
	return e.loaded, true
}

// Embed returns the vector for text. Fails with ErrModelNotLoaded when
// the engine is not loaded and with ErrEmptyInput for blank text.
func (e *Engine) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.ErrEmptyInput
	}

	var vector []float32
	err := e.lifecycle.Infer(func() error {
		v, err := e.backend.Embed(ctx, text)
		if err != nil {
			return errors.Wrap(err, "embedding failed")
		}
		vector = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// EmbedBatch embeds every text preserving input order. The batch is
// atomic: the first backend failure aborts the whole call and no
// partial result is returned.
func (e *Engine) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, errors.ErrEmptyInput
		}
	}

	var vectors [][]float32
	err := e.lifecycle.Infer(func() error {
		result := make([][]float32, 0, len(texts))
		for i, text := range texts {
			v, err := e.backend.Embed(ctx, text)
			if err != nil {
				return errors.Wrapf(err, "embedding failed for batch element %d", i)
			}
			result = append(result, v)
		}
		vectors = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vectors, nil
}

func (e *Engine) resolveModel() (model.Definition, error) {
	available := e.registry.AvailableModels(model.CapabilityEmbedding)
	if len(available) == 0 {
		return model.Definition{}, errors.ErrNoModelAvailable
	}

	if e.modelID == "" {
		return available[0], nil
	}
	for _, def := range available {
		if def.ID == e.modelID {
			return def, nil
		}
	}
	return model.Definition{}, errors.WithCause(errors.ErrNoModelAvailable,
		errors.Newf("embedding model %s is not in the catalog", e.modelID))
}

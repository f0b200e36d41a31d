package generation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"aihub/internal/app/engine"
	"aihub/internal/app/errors"
	"aihub/internal/app/model"
	"aihub/internal/app/registry"
)

// Backend is the opaque local text-generation runtime.
type Backend interface {
	Init(ctx context.Context, modelPath string) error
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// Engine owns the load/unload lifecycle of one local text-generation
// backend. It follows the same state machine as the embedding and
// transcription engines.
type Engine struct {
	lifecycle engine.Lifecycle

	backend  Backend
	registry registry.Registry
	modelID  string
	logger   *zap.Logger

	loaded model.Definition
}

// NewEngine creates an unloaded engine.
func NewEngine(backend Backend, reg registry.Registry, modelID string, logger *zap.Logger) *Engine {
	return &Engine{
		backend:  backend,
		registry: reg,
		modelID:  modelID,
		logger:   logger,
	}
}

// Load resolves and initializes the generation model.
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

		e.logger.Info("loading generation model",
			zap.String("model", def.ID),
			zap.String("path", path))

		if err := e.backend.Init(ctx, path); err != nil {
			return errors.Wrapf(err, "backend init failed for model %s", def.ID)
		}

		e.loaded = def
		return nil
	})
}

// Unload releases the backend. Never fails; no-op when unloaded.
func (e *Engine) Unload() {
	e.lifecycle.Unload(func() {
		if err := e.backend.Close(); err != nil {
			e.logger.Warn("generation backend close failed", zap.Error(err))
		}
		e.loaded = model.Definition{}
	})
}

// IsLoaded reports whether the engine currently holds a loaded backend.
func (e *Engine) IsLoaded() bool {
	return e.lifecycle.IsLoaded()
}

// Generate completes the prompt with the loaded model.
func (e *Engine) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.ErrEmptyInput
	}

	var completion string
	err := e.lifecycle.Infer(func() error {
		out, err := e.backend.Generate(ctx, prompt)
		if err != nil {
			return errors.Wrap(err, "generation failed")
		}
		completion = out
		return nil
	})
	if err != nil {
		return "", err
	}
	return completion, nil
}

func (e *Engine) resolveModel() (model.Definition, error) {
	available := e.registry.AvailableModels(model.CapabilityGeneration)
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
		errors.Newf("generation model %s is not in the catalog", e.modelID))
}

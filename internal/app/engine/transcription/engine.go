package transcription

import (
	"context"

	"go.uber.org/zap"

	"aihub/internal/app/engine"
	"aihub/internal/app/errors"
	"aihub/internal/app/language"
	"aihub/internal/app/model"
	"aihub/internal/app/registry"
)

// Backend is the opaque speech-to-text runtime driven by the engine.
// It consumes normalized mono float32 samples.
type Backend interface {
	// Init prepares the backend with the model artifact at modelPath.
	Init(ctx context.Context, modelPath string) error

	// Transcribe recognizes speech in samples recorded at sampleRate.
	// languageCode is an ISO 639-1 hint; empty means auto-detect.
	Transcribe(ctx context.Context, samples []float32, sampleRate int, languageCode string) ([]model.Segment, error)

	// Close releases backend resources.
	Close() error
}

// Engine owns the load/unload lifecycle of one local transcription
// backend.
type Engine struct {
	lifecycle engine.Lifecycle

	backend  Backend
	registry registry.Registry
	modelID  string
	logger   *zap.Logger

	loaded model.Definition
}

// NewEngine creates an unloaded engine. modelID selects a specific
// catalog entry; when empty the first transcription model wins.
func NewEngine(backend Backend, reg registry.Registry, modelID string, logger *zap.Logger) *Engine {
	return &Engine{
		backend:  backend,
		registry: reg,
		modelID:  modelID,
		logger:   logger,
	}
}

// Load resolves the transcription model, checks its artifact and
// initializes the backend. A no-op when already loaded; reverts to
// unloaded on failure.
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

		e.logger.Info("loading transcription model",
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
			e.logger.Warn("transcription backend close failed", zap.Error(err))
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

// Transcribe recognizes speech in the sample array. lang configures the
// backend's language hint; language.Auto passes no hint. Fails with
// ErrModelNotLoaded when the engine is not loaded.
func (e *Engine) Transcribe(ctx context.Context, samples []float32, sampleRate int, lang language.Language) ([]model.Segment, error) {
	if len(samples) == 0 {
		return nil, errors.ErrEmptyInput
	}
	if sampleRate <= 0 {
		return nil, errors.Newf("invalid sample rate %d", sampleRate)
	}

	code, _ := lang.ISOCode()

	var segments []model.Segment
	err := e.lifecycle.Infer(func() error {
		out, err := e.backend.Transcribe(ctx, samples, sampleRate, code)
		if err != nil {
			return errors.Wrap(err, "transcription failed")
		}
		segments = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return segments, nil
}

func (e *Engine) resolveModel() (model.Definition, error) {
	available := e.registry.AvailableModels(model.CapabilityTranscription)
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
		errors.Newf("transcription model %s is not in the catalog", e.modelID))
}

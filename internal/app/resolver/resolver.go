package resolver

import (
	"aihub/internal/app/errors"
	"aihub/internal/app/model"
	"aihub/internal/app/provider"
	"aihub/internal/app/settings"
)

// Providers holds the concrete local and cloud instances available per
// capability. A nil slot means that variant is not installed.
type Providers struct {
	LocalSpeechToText provider.SpeechToText
	CloudSpeechToText provider.SpeechToText

	LocalEmbedding provider.Embedding
	CloudEmbedding provider.Embedding

	LocalTextGeneration provider.TextGeneration
	CloudTextGeneration provider.TextGeneration

	LocalVision provider.Vision
	CloudVision provider.Vision
}

// Resolver returns the provider instance backing a capability. The
// persisted choice is read on every resolution so a settings change
// takes effect on the next call without restarting anything.
type Resolver struct {
	store     settings.Store
	providers Providers
}

// New creates a resolver over the given provider instances.
func New(store settings.Store, providers Providers) *Resolver {
	return &Resolver{store: store, providers: providers}
}

// SpeechToText resolves the transcription provider.
func (r *Resolver) SpeechToText() (provider.SpeechToText, error) {
	choice, err := r.store.Get(model.CapabilityTranscription)
	if err != nil {
		return nil, err
	}
	return pick(model.CapabilityTranscription, choice,
		r.providers.LocalSpeechToText, r.providers.CloudSpeechToText)
}

// Embedding resolves the embedding provider.
func (r *Resolver) Embedding() (provider.Embedding, error) {
	choice, err := r.store.Get(model.CapabilityEmbedding)
	if err != nil {
		return nil, err
	}
	return pick(model.CapabilityEmbedding, choice,
		r.providers.LocalEmbedding, r.providers.CloudEmbedding)
}

// TextGeneration resolves the text-generation provider.
func (r *Resolver) TextGeneration() (provider.TextGeneration, error) {
	choice, err := r.store.Get(model.CapabilityGeneration)
	if err != nil {
		return nil, err
	}
	return pick(model.CapabilityGeneration, choice,
		r.providers.LocalTextGeneration, r.providers.CloudTextGeneration)
}

// Vision resolves the vision provider.
func (r *Resolver) Vision() (provider.Vision, error) {
	choice, err := r.store.Get(model.CapabilityVision)
	if err != nil {
		return nil, err
	}
	return pick(model.CapabilityVision, choice,
		r.providers.LocalVision, r.providers.CloudVision)
}

// pick selects the instance for a choice, failing when the variant is
// not installed.
func pick[T comparable](capability model.Capability, choice settings.Choice, local, cloud T) (T, error) {
	var zero T
	var selected T

	switch choice {
	case settings.ChoiceLocal:
		selected = local
	case settings.ChoiceCloud:
		selected = cloud
	default:
		return zero, errors.WithCause(errors.ErrInvalidChoice,
			errors.Newf("choice %q for capability %s", choice, capability))
	}

	if selected == zero {
		return zero, errors.WithCause(errors.ErrProviderNotFound,
			errors.Newf("no %s provider installed for capability %s", choice, capability))
	}
	return selected, nil
}

package local

import (
	"context"

	"aihub/internal/app/audio"
	"aihub/internal/app/engine/transcription"
	"aihub/internal/app/errors"
	"aihub/internal/app/language"
	"aihub/internal/app/model"
	"aihub/internal/app/provider"
)

// SpeechToText adapts a transcription engine to the capability-neutral
// speech-to-text provider contract. It decodes the encoded container
// into the raw samples the engine consumes and translates engine
// errors into the provider taxonomy.
type SpeechToText struct {
	engine *transcription.Engine
	lang   language.Language
}

// NewSpeechToText wraps engine. lang is the transcription language
// hint; language.Auto lets the backend detect it.
func NewSpeechToText(engine *transcription.Engine, lang language.Language) *SpeechToText {
	return &SpeechToText{engine: engine, lang: lang}
}

// Transcribe decodes the container and delegates to the engine.
// Malformed containers fail with ErrAudioDecodeFailed before the
// engine is touched; an unloaded engine surfaces as
// ErrProviderNotConfigured, never as the engine's own error kind.
func (p *SpeechToText) Transcribe(ctx context.Context, encoded []byte, format provider.AudioFormat) ([]model.Segment, error) {
	if format != provider.FormatWAV {
		return nil, errors.WithCause(errors.ErrAudioDecodeFailed,
			errors.Newf("unsupported audio format %q", format))
	}

	pcm, err := audio.DecodeWAV(encoded)
	if err != nil {
		return nil, err
	}

	segments, err := p.engine.Transcribe(ctx, pcm.Samples, pcm.SampleRate, p.lang)
	if err != nil {
		return nil, translateEngineError(err)
	}
	return segments, nil
}

// Info implements provider.SpeechToText.
func (p *SpeechToText) Info() provider.Info {
	info := provider.Info{Name: "local-transcription", Kind: provider.KindLocal}
	if def, ok := p.engine.LoadedModel(); ok {
		info.Model = def.ID
	}
	return info
}

// translateEngineError maps engine-internal errors to provider-level
// kinds at the adapter boundary. The engine error is dropped, not
// chained, so engine error identity never leaks to generic callers.
func translateEngineError(err error) error {
	if errors.Is(err, errors.ErrModelNotLoaded) {
		return errors.ErrProviderNotConfigured
	}
	return err
}

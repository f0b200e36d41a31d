package provider

import (
	"context"

	"aihub/internal/app/model"
)

// Kind says where a provider runs.
type Kind string

const (
	KindLocal Kind = "local"
	KindCloud Kind = "cloud"
)

// Info contains metadata about a provider instance.
type Info struct {
	Name  string `json:"name"`  // e.g. "local-whisper", "openai"
	Kind  Kind   `json:"kind"`  // local or cloud
	Model string `json:"model"` // backing model identifier
}

// Embedding is the capability-neutral contract every embedding
// provider — local or cloud — implements identically.
type Embedding interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Info() Info
}

// AudioFormat names the encoded container handed to SpeechToText.
type AudioFormat string

const (
	FormatWAV AudioFormat = "wav"
)

// SpeechToText is the capability-neutral transcription contract.
// audio is an encoded container in the given format, not raw samples.
type SpeechToText interface {
	Transcribe(ctx context.Context, audio []byte, format AudioFormat) ([]model.Segment, error)
	Info() Info
}

// TextGeneration is the capability-neutral text completion contract.
type TextGeneration interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Info() Info
}

// Vision is the capability-neutral image understanding contract.
type Vision interface {
	Describe(ctx context.Context, image []byte, mimeType string) (string, error)
	Info() Info
}

package cloud

import (
	"bytes"
	"context"

	"github.com/sashabaranov/go-openai"

	"aihub/internal/app/errors"
	"aihub/internal/app/model"
	"aihub/internal/app/provider"
)

// SpeechToText transcribes audio through the OpenAI API. It satisfies
// the same provider contract as the local adapter; callers cannot tell
// them apart.
type SpeechToText struct {
	client *openai.Client
	model  string
}

// NewSpeechToText wraps an OpenAI client. Inject a client built with a
// custom base URL for testing.
func NewSpeechToText(client *openai.Client) *SpeechToText {
	return &SpeechToText{client: client, model: openai.Whisper1}
}

// Transcribe uploads the encoded audio and maps the verbose response
// segments onto the shared segment type, order preserved.
func (p *SpeechToText) Transcribe(ctx context.Context, audio []byte, format provider.AudioFormat) ([]model.Segment, error) {
	if len(audio) == 0 {
		return nil, errors.ErrEmptyInput
	}

	req := openai.AudioRequest{
		Model:    p.model,
		Reader:   bytes.NewReader(audio),
		FilePath: "audio." + string(format),
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	resp, err := p.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, errors.WithCause(errors.ErrProviderUnavailable,
			errors.Wrap(err, "openai transcription failed"))
	}

	segments := make([]model.Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, model.Segment{
			Text:  s.Text,
			Start: s.Start,
			End:   s.End,
		})
	}
	return segments, nil
}

// Info implements provider.SpeechToText.
func (p *SpeechToText) Info() provider.Info {
	return provider.Info{Name: "openai", Kind: provider.KindCloud, Model: p.model}
}

// Embedding generates embeddings through the OpenAI API.
type Embedding struct {
	client    *openai.Client
	model     openai.EmbeddingModel
	dimension int
}

// NewEmbedding wraps an OpenAI client using text-embedding-3-small.
func NewEmbedding(client *openai.Client) *Embedding {
	return &Embedding{
		client:    client,
		model:     openai.SmallEmbedding3,
		dimension: 1536,
	}
}

// Embed returns the vector for one text.
func (p *Embedding) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds every text in one API call, order preserved. The
// batch fails as a whole when the API rejects any element.
func (p *Embedding) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.ErrEmptyInput
	}

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: p.model,
		Input: texts,
	})
	if err != nil {
		return nil, errors.WithCause(errors.ErrProviderUnavailable,
			errors.Wrap(err, "openai embeddings failed"))
	}
	if len(resp.Data) != len(texts) {
		return nil, errors.Newf("openai returned %d embeddings for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, errors.Newf("openai returned out-of-range embedding index %d", item.Index)
		}
		vectors[item.Index] = item.Embedding
	}
	return vectors, nil
}

// Info implements provider.Embedding.
func (p *Embedding) Info() provider.Info {
	return provider.Info{Name: "openai", Kind: provider.KindCloud, Model: string(p.model)}
}

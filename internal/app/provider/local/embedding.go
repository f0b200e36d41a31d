package local

import (
	"context"

	"aihub/internal/app/engine/embedding"
	"aihub/internal/app/provider"
)

// Embedding adapts an embedding engine to the capability-neutral
// embedding provider contract.
type Embedding struct {
	engine *embedding.Engine
}

// NewEmbedding wraps engine.
func NewEmbedding(engine *embedding.Engine) *Embedding {
	return &Embedding{engine: engine}
}

// Embed delegates to the engine; an unloaded engine surfaces as
// ErrProviderNotConfigured.
func (p *Embedding) Embed(ctx context.Context, text string) ([]float32, error) {
	vector, err := p.engine.Embed(ctx, text)
	if err != nil {
		return nil, translateEngineError(err)
	}
	return vector, nil
}

// EmbedBatch delegates to the engine's atomic batch operation.
func (p *Embedding) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := p.engine.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, translateEngineError(err)
	}
	return vectors, nil
}

// Info implements provider.Embedding.
func (p *Embedding) Info() provider.Info {
	info := provider.Info{Name: "local-embedding", Kind: provider.KindLocal}
	if def, ok := p.engine.LoadedModel(); ok {
		info.Model = def.ID
	}
	return info
}

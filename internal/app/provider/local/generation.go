package local

import (
	"context"

	"aihub/internal/app/engine/generation"
	"aihub/internal/app/provider"
)

// TextGeneration adapts a generation engine to the capability-neutral
// text-generation provider contract.
type TextGeneration struct {
	engine *generation.Engine
}

// NewTextGeneration wraps engine.
func NewTextGeneration(engine *generation.Engine) *TextGeneration {
	return &TextGeneration{engine: engine}
}

// Generate delegates to the engine; an unloaded engine surfaces as
// ErrProviderNotConfigured.
func (p *TextGeneration) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := p.engine.Generate(ctx, prompt)
	if err != nil {
		return "", translateEngineError(err)
	}
	return out, nil
}

// Info implements provider.TextGeneration.
func (p *TextGeneration) Info() provider.Info {
	return provider.Info{Name: "local-generation", Kind: provider.KindLocal}
}

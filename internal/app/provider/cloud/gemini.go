package cloud

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"aihub/internal/app/errors"
	"aihub/internal/app/provider"
)

const geminiModel = "gemini-2.0-flash"

// TextGeneration completes prompts through the Gemini API.
type TextGeneration struct {
	client *genai.Client
	model  string
}

// NewTextGeneration wraps a genai client.
func NewTextGeneration(client *genai.Client) *TextGeneration {
	return &TextGeneration{client: client, model: geminiModel}
}

// Generate returns the model's completion for prompt.
func (p *TextGeneration) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.ErrEmptyInput
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", errors.WithCause(errors.ErrProviderUnavailable,
			errors.Wrap(err, "gemini generation failed"))
	}
	return resp.Text(), nil
}

// Info implements provider.TextGeneration.
func (p *TextGeneration) Info() provider.Info {
	return provider.Info{Name: "gemini", Kind: provider.KindCloud, Model: p.model}
}

// Vision describes images through the Gemini API.
type Vision struct {
	client *genai.Client
	model  string
	prompt string
}

// NewVision wraps a genai client.
func NewVision(client *genai.Client) *Vision {
	return &Vision{
		client: client,
		model:  geminiModel,
		prompt: "Describe this image concisely.",
	}
}

// Describe returns a natural-language description of the image.
func (p *Vision) Describe(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", errors.ErrEmptyInput
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(p.prompt),
		}, genai.RoleUser),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, nil)
	if err != nil {
		return "", errors.WithCause(errors.ErrProviderUnavailable,
			errors.Wrap(err, "gemini vision failed"))
	}
	return resp.Text(), nil
}

// Info implements provider.Vision.
func (p *Vision) Info() provider.Info {
	return provider.Info{Name: "gemini", Kind: provider.KindCloud, Model: p.model}
}

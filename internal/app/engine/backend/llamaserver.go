package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"aihub/internal/app/errors"
)

// LlamaServerConfig configures the HTTP connection to a llama.cpp
// server instance used for local embedding and text generation.
type LlamaServerConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

// llamaClient holds the pieces shared by the embedding and generation
// backends.
type llamaClient struct {
	config LlamaServerConfig
	client *http.Client
}

func newLlamaClient(config LlamaServerConfig) llamaClient {
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 512
	}
	return llamaClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// init verifies the server is reachable. llama.cpp loads its model at
// startup, so there is nothing to push; a health probe is the closest
// equivalent of a load.
func (l *llamaClient) init(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.config.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("llama server health probe: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("llama server health returned %d", resp.StatusCode)
	}
	return nil
}

func (l *llamaClient) post(ctx context.Context, path string, payload, out interface{}) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.config.BaseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return errors.WithCause(errors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.WithCause(errors.ErrProviderUnavailable,
			errors.Newf("llama server %s returned %d: %s", path, resp.StatusCode, string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WithCause(errors.ErrProviderUnavailable, err)
	}
	return nil
}

// LlamaEmbedding is an embedding backend over the llama.cpp server
// /embedding endpoint.
type LlamaEmbedding struct {
	llamaClient
}

// NewLlamaEmbedding creates the embedding backend.
func NewLlamaEmbedding(config LlamaServerConfig) *LlamaEmbedding {
	return &LlamaEmbedding{llamaClient: newLlamaClient(config)}
}

func (l *LlamaEmbedding) Init(ctx context.Context, modelPath string) error {
	return l.init(ctx)
}

func (l *LlamaEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	var resp struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := l.post(ctx, "/embedding", map[string]string{"content": text}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embedding) == 0 {
		return nil, errors.WithCause(errors.ErrProviderUnavailable,
			errors.New("llama server returned an empty embedding"))
	}
	return resp.Embedding, nil
}

func (l *LlamaEmbedding) Close() error {
	return nil
}

// LlamaGeneration is a text-generation backend over the llama.cpp
// server /completion endpoint.
type LlamaGeneration struct {
	llamaClient
}

// NewLlamaGeneration creates the generation backend.
func NewLlamaGeneration(config LlamaServerConfig) *LlamaGeneration {
	return &LlamaGeneration{llamaClient: newLlamaClient(config)}
}

func (l *LlamaGeneration) Init(ctx context.Context, modelPath string) error {
	return l.init(ctx)
}

func (l *LlamaGeneration) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"prompt":    prompt,
		"n_predict": l.config.MaxTokens,
	}
	var resp struct {
		Content string `json:"content"`
	}
	if err := l.post(ctx, "/completion", payload, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (l *LlamaGeneration) Close() error {
	return nil
}

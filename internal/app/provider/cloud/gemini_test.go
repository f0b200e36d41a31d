package cloud

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"aihub/internal/app/errors"
	"aihub/internal/app/provider"
)

func newGeminiTestClient(t *testing.T, handler http.HandlerFunc) *genai.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "AIzaTestKeyForLocalServerOnly000000",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
	})
	require.NoError(t, err)
	return client
}

func generateContentResponse(text string) string {
	return `{"candidates":[{"content":{"role":"model","parts":[{"text":"` + text + `"}]}}]}`
}

func TestGeminiGenerate(t *testing.T) {
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "generateContent")
		assert.Contains(t, r.URL.Path, geminiModel)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(generateContentResponse("a short completion")))
	})

	p := NewTextGeneration(client)
	text, err := p.Generate(context.Background(), "finish this thought")
	require.NoError(t, err)
	assert.Equal(t, "a short completion", text)
}

func TestGeminiGenerateEmptyPrompt(t *testing.T) {
	p := NewTextGeneration(newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := p.Generate(context.Background(), "   ")
	assert.True(t, errors.Is(err, errors.ErrEmptyInput))
}

func TestGeminiGenerateServerError(t *testing.T) {
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":500,"message":"boom"}}`, http.StatusInternalServerError)
	})

	p := NewTextGeneration(client)
	_, err := p.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrProviderUnavailable))
}

func TestGeminiDescribe(t *testing.T) {
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "generateContent")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(generateContentResponse("a cat on a chair")))
	})

	p := NewVision(client)
	text, err := p.Describe(context.Background(), []byte("fake image bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "a cat on a chair", text)
}

func TestGeminiDescribeEmptyImage(t *testing.T) {
	p := NewVision(newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := p.Describe(context.Background(), nil, "image/png")
	assert.True(t, errors.Is(err, errors.ErrEmptyInput))
}

func TestGeminiInfo(t *testing.T) {
	client := newGeminiTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	generation := NewTextGeneration(client)
	assert.Equal(t, provider.KindCloud, generation.Info().Kind)
	assert.True(t, strings.HasPrefix(generation.Info().Model, "gemini"))

	vision := NewVision(client)
	assert.Equal(t, provider.KindCloud, vision.Info().Kind)
}

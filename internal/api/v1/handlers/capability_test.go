package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aihub/internal/api/v1/dto"
	"aihub/internal/app/errors"
	"aihub/internal/app/language"
	"aihub/internal/app/model"
	"aihub/internal/app/provider"
	"aihub/internal/app/resolver"
	"aihub/internal/app/settings"
)

type memoryStore struct {
	choices map[model.Capability]settings.Choice
}

func (s *memoryStore) Get(capability model.Capability) (settings.Choice, error) {
	if choice, ok := s.choices[capability]; ok {
		return choice, nil
	}
	return settings.ChoiceLocal, nil
}

func (s *memoryStore) Set(capability model.Capability, choice settings.Choice) error {
	s.choices[capability] = choice
	return nil
}

type stubEmbedding struct {
	err error
}

func (p *stubEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []float32{0.1, 0.2}, nil
}

func (p *stubEmbedding) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2}
	}
	return out, nil
}

func (p *stubEmbedding) Info() provider.Info {
	return provider.Info{Name: "stub-embedding", Kind: provider.KindLocal, Model: "stub"}
}

type stubSTT struct {
	err      error
	segments []model.Segment
}

func (p *stubSTT) Transcribe(ctx context.Context, audio []byte, format provider.AudioFormat) ([]model.Segment, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.segments, nil
}

func (p *stubSTT) Info() provider.Info {
	return provider.Info{Name: "stub-stt", Kind: provider.KindLocal}
}

func newTestRouter(t *testing.T, providers resolver.Providers) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memoryStore{choices: map[model.Capability]settings.Choice{}}
	res := resolver.New(store, providers)
	metrics := provider.NewMetrics(prometheus.NewRegistry())

	router := gin.New()
	capability := NewCapabilityHandler(res, language.NewDetector(), metrics)
	providerHandler := NewProviderHandler(store)

	v1 := router.Group("/api/v1")
	v1.POST("/detect", capability.Detect)
	v1.POST("/embed", capability.Embed)
	v1.POST("/transcribe", capability.Transcribe)
	v1.GET("/providers/:capability", providerHandler.Get)
	v1.PUT("/providers/:capability", providerHandler.Set)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDetectEndpoint(t *testing.T) {
	router := newTestRouter(t, resolver.Providers{})

	w := postJSON(t, router, "/api/v1/detect", gin.H{"text": "Hello, how are you doing today?"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.DetectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "english", resp.Language)
	assert.Equal(t, "en", resp.ISOCode)
	assert.NotEmpty(t, resp.Hypotheses)
}

func TestDetectEndpointShortText(t *testing.T) {
	router := newTestRouter(t, resolver.Providers{})

	w := postJSON(t, router, "/api/v1/detect", gin.H{"text": "Hi"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.DetectResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Language)
	assert.Empty(t, resp.Hypotheses)
}

func TestDetectEndpointMissingText(t *testing.T) {
	router := newTestRouter(t, resolver.Providers{})

	w := postJSON(t, router, "/api/v1/detect", gin.H{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEmbedEndpoint(t *testing.T) {
	router := newTestRouter(t, resolver.Providers{LocalEmbedding: &stubEmbedding{}})

	w := postJSON(t, router, "/api/v1/embed", gin.H{"texts": []string{"one", "two"}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.EmbedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "stub-embedding", resp.Provider)
	assert.Len(t, resp.Vectors, 2)
}

func TestEmbedEndpointNotConfigured(t *testing.T) {
	router := newTestRouter(t, resolver.Providers{
		LocalEmbedding: &stubEmbedding{err: errors.ErrProviderNotConfigured},
	})

	w := postJSON(t, router, "/api/v1/embed", gin.H{"texts": []string{"one"}})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestEmbedEndpointNoProviderInstalled(t *testing.T) {
	router := newTestRouter(t, resolver.Providers{})

	w := postJSON(t, router, "/api/v1/embed", gin.H{"texts": []string{"one"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTranscribeEndpoint(t *testing.T) {
	segments := []model.Segment{
		{Text: "hello", Start: 0, End: 1},
		{Text: "world", Start: 1, End: 2},
	}
	router := newTestRouter(t, resolver.Providers{LocalSpeechToText: &stubSTT{segments: segments}})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", "sample.wav")
	require.NoError(t, err)
	_, err = part.Write([]byte("payload handled by the stub"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TranscribeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Segments, 2)
	assert.Equal(t, "hello", resp.Segments[0].Text)
	assert.Equal(t, "world", resp.Segments[1].Text)
}

func TestTranscribeEndpointDecodeFailure(t *testing.T) {
	router := newTestRouter(t, resolver.Providers{
		LocalSpeechToText: &stubSTT{err: errors.WithCause(errors.ErrAudioDecodeFailed, errors.New("bad header"))},
	})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", "sample.wav")
	require.NoError(t, err)
	_, err = part.Write([]byte("not a wav"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTranscribeEndpointMissingFile(t *testing.T) {
	router := newTestRouter(t, resolver.Providers{LocalSpeechToText: &stubSTT{}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcribe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestProviderChoiceEndpoints(t *testing.T) {
	router := newTestRouter(t, resolver.Providers{})

	// Default choice is local.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers/embedding", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ProviderChoiceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "local", resp.Choice)

	// Flip to cloud.
	payload, _ := json.Marshal(gin.H{"choice": "cloud"})
	req = httptest.NewRequest(http.MethodPut, "/api/v1/providers/embedding", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/providers/embedding", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cloud", resp.Choice)
}

func TestProviderChoiceUnknownCapability(t *testing.T) {
	router := newTestRouter(t, resolver.Providers{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers/telepathy", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProviderChoiceRejectsInvalidValue(t *testing.T) {
	router := newTestRouter(t, resolver.Providers{})

	payload, _ := json.Marshal(gin.H{"choice": "hybrid"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/providers/embedding", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

package cloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aihub/internal/app/errors"
	"aihub/internal/app/provider"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *openai.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	return openai.NewClientWithConfig(config)
}

func TestCloudSpeechToTextMapsSegments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"task":     "transcribe",
			"language": "english",
			"duration": 3.5,
			"text":     "hello world again",
			"segments": []map[string]interface{}{
				{"id": 0, "start": 0.0, "end": 1.5, "text": "hello world"},
				{"id": 1, "start": 1.5, "end": 3.5, "text": "again"},
			},
		})
	})

	p := NewSpeechToText(client)
	segments, err := p.Transcribe(context.Background(), []byte("fake audio"), provider.FormatWAV)
	require.NoError(t, err)

	require.Len(t, segments, 2)
	assert.Equal(t, "hello world", segments[0].Text)
	assert.InDelta(t, 0.0, segments[0].Start, 1e-9)
	assert.InDelta(t, 1.5, segments[0].End, 1e-9)
	assert.Equal(t, "again", segments[1].Text)
}

func TestCloudSpeechToTextEmptyAudio(t *testing.T) {
	p := NewSpeechToText(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := p.Transcribe(context.Background(), nil, provider.FormatWAV)
	assert.True(t, errors.Is(err, errors.ErrEmptyInput))
}

func TestCloudSpeechToTextAPIFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})

	p := NewSpeechToText(client)
	_, err := p.Transcribe(context.Background(), []byte("fake audio"), provider.FormatWAV)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrProviderUnavailable))
}

func TestCloudEmbeddingBatchOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)

		// Return the items out of order; the provider must reorder by index.
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"model":  "text-embedding-3-small",
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 1, "embedding": []float32{0.4, 0.5}},
				{"object": "embedding", "index": 0, "embedding": []float32{0.1, 0.2}},
			},
		})
	})

	p := NewEmbedding(client)
	vectors, err := p.EmbedBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)

	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{0.1, 0.2}, vectors[0])
	assert.Equal(t, []float32{0.4, 0.5}, vectors[1])
}

func TestCloudEmbeddingCountMismatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 0, "embedding": []float32{0.1}},
			},
		})
	})

	p := NewEmbedding(client)
	_, err := p.EmbedBatch(context.Background(), []string{"first", "second"})
	assert.Error(t, err)
}

func TestCloudProviderInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	stt := NewSpeechToText(client)
	assert.Equal(t, provider.KindCloud, stt.Info().Kind)

	emb := NewEmbedding(client)
	assert.Equal(t, provider.KindCloud, emb.Info().Kind)
	assert.Equal(t, "text-embedding-3-small", emb.Info().Model)
}

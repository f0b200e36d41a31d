package embedding

import (
	"context"
	"crypto/sha256"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "aihub/internal/app/errors"
	"aihub/internal/app/model"
)

// fakeRegistry implements registry.Registry with a fixed catalog.
type fakeRegistry struct {
	models     []model.Definition
	downloaded map[string]bool
}

func (r *fakeRegistry) AvailableModels(capability model.Capability) []model.Definition {
	var out []model.Definition
	for _, def := range r.models {
		if def.Capability == capability {
			out = append(out, def)
		}
	}
	return out
}

func (r *fakeRegistry) DownloadPath(def model.Definition) string {
	return filepath.Join("/models", def.ID+".bin")
}

func (r *fakeRegistry) IsDownloaded(def model.Definition) bool {
	return r.downloaded[def.ID]
}

// fakeBackend embeds text deterministically from a SHA256 of the input.
type fakeBackend struct {
	mu        sync.Mutex
	dimension int
	initCalls int
	closed    int
	initErr   error
	embedErr  error
	failOn    string
}

func (b *fakeBackend) Init(ctx context.Context, modelPath string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initCalls++
	return b.initErr
}

func (b *fakeBackend) Embed(ctx context.Context, text string) ([]float32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.embedErr != nil {
		return nil, b.embedErr
	}
	if b.failOn != "" && text == b.failOn {
		return nil, errors.New("backend rejected input")
	}

	hash := sha256.Sum256([]byte(text))
	vector := make([]float32, b.dimension)
	for i := range vector {
		vector[i] = (float32(hash[i%len(hash)])/255.0)*2 - 1
	}
	return vector, nil
}

func (b *fakeBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed++
	return nil
}

func newTestEngine(t *testing.T, backend *fakeBackend) *Engine {
	t.Helper()
	reg := &fakeRegistry{
		models: []model.Definition{
			{ID: "minilm-l6-v2", Capability: model.CapabilityEmbedding},
		},
		downloaded: map[string]bool{"minilm-l6-v2": true},
	}
	return NewEngine(backend, reg, "", zap.NewNop())
}

func TestEngineStartsUnloaded(t *testing.T) {
	e := newTestEngine(t, &fakeBackend{dimension: 8})

	assert.False(t, e.IsLoaded())
	_, ok := e.LoadedModel()
	assert.False(t, ok)
}

func TestLoadAndUnload(t *testing.T) {
	backend := &fakeBackend{dimension: 8}
	e := newTestEngine(t, backend)

	require.NoError(t, e.Load(context.Background()))
	assert.True(t, e.IsLoaded())

	def, ok := e.LoadedModel()
	require.True(t, ok)
	assert.Equal(t, "minilm-l6-v2", def.ID)

	// Load again is a no-op.
	require.NoError(t, e.Load(context.Background()))
	assert.Equal(t, 1, backend.initCalls)

	e.Unload()
	assert.False(t, e.IsLoaded())
	assert.Equal(t, 1, backend.closed)

	// Repeated unload stays a no-op.
	e.Unload()
	assert.Equal(t, 1, backend.closed)
}

func TestReloadRestoresUsableEngine(t *testing.T) {
	e := newTestEngine(t, &fakeBackend{dimension: 8})

	require.NoError(t, e.Load(context.Background()))
	e.Unload()
	require.NoError(t, e.Load(context.Background()))
	assert.True(t, e.IsLoaded())

	vector, err := e.Embed(context.Background(), "still working")
	require.NoError(t, err)
	assert.Len(t, vector, 8)
}

func TestLoadFailsWhenArtifactMissing(t *testing.T) {
	backend := &fakeBackend{dimension: 8}
	reg := &fakeRegistry{
		models: []model.Definition{
			{ID: "minilm-l6-v2", Capability: model.CapabilityEmbedding},
		},
		downloaded: map[string]bool{},
	}
	e := NewEngine(backend, reg, "", zap.NewNop())

	err := e.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrLoadFailed))
	assert.True(t, errors.Is(err, apperrors.ErrModelNotDownloaded))
	assert.False(t, e.IsLoaded())
	assert.Equal(t, 0, backend.initCalls)
}

func TestLoadFailsWhenBackendInitFails(t *testing.T) {
	backend := &fakeBackend{dimension: 8, initErr: errors.New("incompatible quantization")}
	e := newTestEngine(t, backend)

	err := e.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrLoadFailed))
	assert.Contains(t, err.Error(), "incompatible quantization")
	assert.False(t, e.IsLoaded())
}

func TestLoadFailsWhenCatalogEmpty(t *testing.T) {
	reg := &fakeRegistry{downloaded: map[string]bool{}}
	e := NewEngine(&fakeBackend{dimension: 8}, reg, "", zap.NewNop())

	err := e.Load(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrNoModelAvailable))
}

func TestEmbedRequiresLoaded(t *testing.T) {
	e := newTestEngine(t, &fakeBackend{dimension: 8})

	_, err := e.Embed(context.Background(), "hello")
	assert.True(t, errors.Is(err, apperrors.ErrModelNotLoaded))

	_, err = e.EmbedBatch(context.Background(), []string{"hello"})
	assert.True(t, errors.Is(err, apperrors.ErrModelNotLoaded))
}

func TestEmbedDeterministic(t *testing.T) {
	e := newTestEngine(t, &fakeBackend{dimension: 16})
	require.NoError(t, e.Load(context.Background()))

	first, err := e.Embed(context.Background(), "the same text")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := e.Embed(context.Background(), "the same text")
	require.NoError(t, err)
	require.Len(t, second, len(first))

	for i := range first {
		assert.InDelta(t, first[i], second[i], 1e-4)
	}
}

func TestEmbedRejectsEmptyText(t *testing.T) {
	e := newTestEngine(t, &fakeBackend{dimension: 8})
	require.NoError(t, e.Load(context.Background()))

	_, err := e.Embed(context.Background(), "   ")
	assert.True(t, errors.Is(err, apperrors.ErrEmptyInput))
}

func TestEmbedBatchPreservesOrder(t *testing.T) {
	e := newTestEngine(t, &fakeBackend{dimension: 8})
	require.NoError(t, e.Load(context.Background()))

	texts := []string{"alpha", "beta", "gamma"}
	vectors, err := e.EmbedBatch(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, len(texts))

	for i, text := range texts {
		single, err := e.Embed(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, single, vectors[i], "batch element %d diverges from single embed", i)
	}
}

func TestEmbedBatchIsAtomic(t *testing.T) {
	e := newTestEngine(t, &fakeBackend{dimension: 8, failOn: "beta"})
	require.NoError(t, e.Load(context.Background()))

	vectors, err := e.EmbedBatch(context.Background(), []string{"alpha", "beta", "gamma"})
	require.Error(t, err)
	assert.Nil(t, vectors)
}

func TestConcurrentLoadInitializesOnce(t *testing.T) {
	backend := &fakeBackend{dimension: 8}
	e := newTestEngine(t, backend)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, e.Load(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, backend.initCalls)
	assert.True(t, e.IsLoaded())
}

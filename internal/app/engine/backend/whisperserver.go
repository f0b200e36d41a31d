package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"aihub/internal/app/audio"
	"aihub/internal/app/errors"
	"aihub/internal/app/model"
)

// WhisperServerConfig configures the HTTP connection to a local
// whisper.cpp server instance.
type WhisperServerConfig struct {
	BaseURL       string        `yaml:"base_url"`
	InferencePath string        `yaml:"inference_path"`
	LoadPath      string        `yaml:"load_path"`
	Timeout       time.Duration `yaml:"timeout"`
}

// WhisperServer is a transcription backend that talks to a running
// whisper.cpp server over HTTP. Load instructs the server to swap in
// the requested model file; inference uploads WAV audio as multipart
// form data and reads back verbose JSON segments.
type WhisperServer struct {
	config WhisperServerConfig
	client *http.Client
}

// NewWhisperServer creates the backend with defaults filled in.
func NewWhisperServer(config WhisperServerConfig) *WhisperServer {
	if config.InferencePath == "" {
		config.InferencePath = "/inference"
	}
	if config.LoadPath == "" {
		config.LoadPath = "/load"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	return &WhisperServer{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

type whisperServerSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type whisperServerResponse struct {
	Text     string                 `json:"text,omitempty"`
	Segments []whisperServerSegment `json:"segments,omitempty"`
}

// Init asks the server to load the model artifact at modelPath.
func (w *WhisperServer) Init(ctx context.Context, modelPath string) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("model", modelPath); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.BaseURL+w.config.LoadPath, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("whisper server load request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("whisper server load returned %d: %s", resp.StatusCode, string(payload))
	}
	return nil
}

// Transcribe uploads the samples as a 16-bit mono WAV and returns the
// segments the server produced.
func (w *WhisperServer) Transcribe(ctx context.Context, samples []float32, sampleRate int, languageCode string) ([]model.Segment, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(audio.EncodeWAV(samples, sampleRate, 1)); err != nil {
		return nil, err
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, err
	}
	if languageCode != "" {
		if err := writer.WriteField("language", languageCode); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.BaseURL+w.config.InferencePath, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, errors.WithCause(errors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, errors.WithCause(errors.ErrProviderUnavailable,
			errors.Newf("whisper server inference returned %d: %s", resp.StatusCode, string(payload)))
	}

	var decoded whisperServerResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.WithCause(errors.ErrProviderUnavailable, err)
	}

	segments := make([]model.Segment, 0, len(decoded.Segments))
	for _, s := range decoded.Segments {
		segments = append(segments, model.Segment{Text: s.Text, Start: s.Start, End: s.End})
	}
	// Plain-text responses carry no timing, keep the full text as one
	// segment rather than dropping it.
	if len(segments) == 0 && decoded.Text != "" {
		segments = append(segments, model.Segment{Text: decoded.Text})
	}
	return segments, nil
}

// Close is a no-op; the server owns the model memory.
func (w *WhisperServer) Close() error {
	return nil
}

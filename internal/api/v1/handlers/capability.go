package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "aihub/internal/api/errors"
	"aihub/internal/api/middleware"
	"aihub/internal/api/v1/dto"
	"aihub/internal/app/language"
	"aihub/internal/app/model"
	"aihub/internal/app/provider"
	"aihub/internal/app/resolver"
	"aihub/internal/app/settings"
)

const defaultMaxHypotheses = 3

// CapabilityHandler serves the capability endpoints: language
// detection, embedding and transcription.
type CapabilityHandler struct {
	resolver *resolver.Resolver
	detector *language.Detector
	metrics  *provider.Metrics
}

// NewCapabilityHandler creates the handler.
func NewCapabilityHandler(r *resolver.Resolver, d *language.Detector, m *provider.Metrics) *CapabilityHandler {
	return &CapabilityHandler{resolver: r, detector: d, metrics: m}
}

// Detect handles POST /api/v1/detect
func (h *CapabilityHandler) Detect(c *gin.Context) {
	var req dto.DetectRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	maxHypotheses := req.MaxHypotheses
	if maxHypotheses == 0 {
		maxHypotheses = defaultMaxHypotheses
	}

	resp := dto.DetectResponse{Hypotheses: []dto.LanguageHypothesis{}}
	for _, hyp := range h.detector.DetectWithConfidence(req.Text, maxHypotheses) {
		code, _ := hyp.Language.ISOCode()
		resp.Hypotheses = append(resp.Hypotheses, dto.LanguageHypothesis{
			Language:   string(hyp.Language),
			ISOCode:    code,
			Confidence: hyp.Confidence,
		})
	}
	if verdict, ok := h.detector.Detect(req.Text); ok {
		resp.Language = string(verdict)
		resp.ISOCode, _ = verdict.ISOCode()
	}

	c.JSON(http.StatusOK, resp)
}

// Embed handles POST /api/v1/embed
func (h *CapabilityHandler) Embed(c *gin.Context) {
	var req dto.EmbedRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	p, err := h.resolver.Embedding()
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	start := time.Now()
	vectors, err := p.EmbedBatch(c.Request.Context(), req.Texts)
	h.metrics.Observe(string(model.CapabilityEmbedding), p.Info().Name, start, err)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EmbedResponse{
		Provider: p.Info().Name,
		Model:    p.Info().Model,
		Vectors:  vectors,
	})
}

// Transcribe handles POST /api/v1/transcribe (multipart, field "audio")
func (h *CapabilityHandler) Transcribe(c *gin.Context) {
	file, _, err := c.Request.FormFile("audio")
	if err != nil {
		middleware.HandleError(c, apierrors.NewValidationError("Validation failed",
			map[string]string{"audio": "multipart file field is required"}))
		return
	}
	defer file.Close()

	encoded, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	p, err := h.resolver.SpeechToText()
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	start := time.Now()
	segments, err := p.Transcribe(c.Request.Context(), encoded, provider.FormatWAV)
	h.metrics.Observe(string(model.CapabilityTranscription), p.Info().Name, start, err)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	resp := dto.TranscribeResponse{
		Provider: p.Info().Name,
		Segments: make([]dto.SegmentResponse, 0, len(segments)),
	}
	for _, s := range segments {
		resp.Segments = append(resp.Segments, dto.SegmentResponse{
			Text:  s.Text,
			Start: s.Start,
			End:   s.End,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// ProviderHandler serves the provider-choice endpoints.
type ProviderHandler struct {
	store settings.Store
}

// NewProviderHandler creates the handler.
func NewProviderHandler(store settings.Store) *ProviderHandler {
	return &ProviderHandler{store: store}
}

// Get handles GET /api/v1/providers/:capability
func (h *ProviderHandler) Get(c *gin.Context) {
	capability := model.Capability(c.Param("capability"))
	if !capability.Valid() {
		middleware.HandleError(c, &apierrors.APIError{
			Kind:    apierrors.KindNotFound,
			Message: "unknown capability",
		})
		return
	}

	choice, err := h.store.Get(capability)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProviderChoiceResponse{
		Capability: string(capability),
		Choice:     string(choice),
	})
}

// Set handles PUT /api/v1/providers/:capability
func (h *ProviderHandler) Set(c *gin.Context) {
	capability := model.Capability(c.Param("capability"))
	if !capability.Valid() {
		middleware.HandleError(c, &apierrors.APIError{
			Kind:    apierrors.KindNotFound,
			Message: "unknown capability",
		})
		return
	}

	var req dto.SetProviderChoiceRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	if err := h.store.Set(capability, settings.Choice(req.Choice)); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProviderChoiceResponse{
		Capability: string(capability),
		Choice:     req.Choice,
	})
}

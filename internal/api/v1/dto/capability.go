package dto

// DetectRequest asks for a language verdict on a text span.
type DetectRequest struct {
	Text          string `json:"text" binding:"required"`
	MaxHypotheses int    `json:"max_hypotheses" binding:"omitempty,min=1,max=10"`
}

// LanguageHypothesis is one detector guess.
type LanguageHypothesis struct {
	Language   string  `json:"language"`
	ISOCode    string  `json:"iso_code,omitempty"`
	Confidence float64 `json:"confidence"`
}

// DetectResponse carries the verdict. Language is empty when the text
// was too short to classify.
type DetectResponse struct {
	Language   string               `json:"language,omitempty"`
	ISOCode    string               `json:"iso_code,omitempty"`
	Hypotheses []LanguageHypothesis `json:"hypotheses"`
}

// EmbedRequest asks for embeddings of one or more texts.
type EmbedRequest struct {
	Texts []string `json:"texts" binding:"required,min=1"`
}

// EmbedResponse returns the vectors in input order.
type EmbedResponse struct {
	Provider string      `json:"provider"`
	Model    string      `json:"model,omitempty"`
	Vectors  [][]float32 `json:"vectors"`
}

// TranscribeResponse returns the recognized segments in order.
type TranscribeResponse struct {
	Provider string            `json:"provider"`
	Segments []SegmentResponse `json:"segments"`
}

// SegmentResponse is one timed span of recognized text.
type SegmentResponse struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// ProviderChoiceResponse reports the persisted choice for a capability.
type ProviderChoiceResponse struct {
	Capability string `json:"capability"`
	Choice     string `json:"choice"`
}

// SetProviderChoiceRequest updates the persisted choice.
type SetProviderChoiceRequest struct {
	Choice string `json:"choice" binding:"required,oneof=local cloud"`
}

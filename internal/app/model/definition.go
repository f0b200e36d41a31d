package model

// Capability identifies a class of AI function served by a provider.
type Capability string

const (
	CapabilityEmbedding     Capability = "embedding"
	CapabilityTranscription Capability = "transcription"
	CapabilityGeneration    Capability = "generation"
	CapabilityVision        Capability = "vision"
)

// Capabilities lists every known capability in a fixed order.
func Capabilities() []Capability {
	return []Capability{
		CapabilityEmbedding,
		CapabilityTranscription,
		CapabilityGeneration,
		CapabilityVision,
	}
}

// Valid reports whether c is one of the known capabilities.
func (c Capability) Valid() bool {
	switch c {
	case CapabilityEmbedding, CapabilityTranscription, CapabilityGeneration, CapabilityVision:
		return true
	}
	return false
}

// Definition describes an installable inference model. Values are
// produced by the model registry and consumed read-only by engines.
type Definition struct {
	ID          string     `yaml:"id" json:"id"`
	DisplayName string     `yaml:"display_name" json:"display_name"`
	Capability  Capability `yaml:"capability" json:"capability"`
	RemoteID    string     `yaml:"remote_id" json:"remote_id"`
	SizeBytes   int64      `yaml:"size_bytes" json:"size_bytes"`
	MemoryBytes int64      `yaml:"memory_bytes" json:"memory_bytes"`
}

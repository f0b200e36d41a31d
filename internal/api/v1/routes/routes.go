package routes

import (
	"github.com/gin-gonic/gin"

	"aihub/internal/api/v1/handlers"
)

// Handlers bundles everything the v1 routes need.
type Handlers struct {
	Capability *handlers.CapabilityHandler
	Provider   *handlers.ProviderHandler
}

// RegisterV1 mounts the v1 API under /api/v1.
func RegisterV1(router gin.IRouter, h Handlers) {
	v1 := router.Group("/api/v1")

	v1.POST("/detect", h.Capability.Detect)
	v1.POST("/embed", h.Capability.Embed)
	v1.POST("/transcribe", h.Capability.Transcribe)

	v1.GET("/providers/:capability", h.Provider.Get)
	v1.PUT("/providers/:capability", h.Provider.Set)
}

package handlers

import (
	"charging_occupancy/internal/logger"

	"github.com/gin-gonic/gin"
)

// Handler wires the read-only artifact API to the batch output directory.
type Handler struct {
	artifactDir string
	log         *logger.Logger
}

// NewHandler constructs an HTTP handler serving artifacts from dir.
func NewHandler(artifactDir string, log *logger.Logger) *Handler {
	return &Handler{artifactDir: artifactDir, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Health endpoint
	router.GET("/health", h.health)

	api := router.Group("/api/v1")
	{
		artifacts := api.Group("/artifacts")
		artifacts.GET("", h.listArtifacts)
		artifacts.GET("/:name", h.getArtifact)
	}

	return router
}

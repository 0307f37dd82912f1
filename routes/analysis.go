package routes

import (
	"github.com/gin-gonic/gin"

	"clauseguard/controllers"
	"clauseguard/websocket"
)

// SetupAnalysisRoutes registers the contract analysis endpoints.
func SetupAnalysisRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "ClauseGuard API is running."})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	router.POST("/upload", controllers.UploadContract)
	router.POST("/compare", controllers.CompareContracts)

	router.GET("/analyses", controllers.ListAnalyses)
	router.GET("/analyses/:id", controllers.GetAnalysis)

	// Live batch progress for a running analysis.
	router.GET("/ws/progress/:id", websocket.ProgressHandler)
}

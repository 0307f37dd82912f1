package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"clauseguard/db"
)

// ListAnalyses returns the most recent persisted analyses.
func ListAnalyses(c *gin.Context) {
	if !db.Connected() {
		c.JSON(503, gin.H{"error": "Analysis history storage is unavailable."})
		return
	}

	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 || parsed > 100 {
			c.JSON(400, gin.H{"error": "limit must be an integer between 1 and 100."})
			return
		}
		limit = parsed
	}

	records, err := db.ListAnalyses(limit)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load analyses: " + err.Error()})
		return
	}
	c.JSON(200, gin.H{"analyses": records})
}

// GetAnalysis returns one persisted analysis by id.
func GetAnalysis(c *gin.Context) {
	if !db.Connected() {
		c.JSON(503, gin.H{"error": "Analysis history storage is unavailable."})
		return
	}

	record, err := db.GetAnalysis(c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(404, gin.H{"error": "Analysis not found."})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load analysis: " + err.Error()})
		return
	}
	c.JSON(200, record)
}

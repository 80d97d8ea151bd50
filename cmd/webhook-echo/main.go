package main

import (
	"log"
	"net/http"
	"os"

	"go-superset-notifier/internal/models"

	"github.com/gin-gonic/gin"
)

// A stand-in for the n8n webhook: point N8N_WEBHOOK_URL at
// http://localhost:8080/webhook/jobs and watch what the notifier sends.
func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Webhook echo is running!",
			"status":  "healthy",
		})
	})

	r.POST("/webhook/jobs", func(c *gin.Context) {
		var job models.JobRecord
		if err := c.ShouldBindJSON(&job); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("📦 Job received: %+v", job)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Printf("Server listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

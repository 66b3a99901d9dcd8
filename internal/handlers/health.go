package handlers

import (
	"net/http"
	"time"

	"project-records/internal/database"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version,omitempty"`
	Database  string    `json:"database"`
}

// Health: 200 если база отвечает, иначе 503
func (h *Handlers) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Service:   "project-records",
		Version:   h.Version,
		Database:  "up",
	}

	if err := database.Ping(h.DB); err != nil {
		resp.Status = "degraded"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

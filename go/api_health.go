package logisticsserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthAPI answers liveness checks.
type HealthAPI struct {
	now func() time.Time
}

// NewHealthAPI creates a HealthAPI using the wall clock.
func NewHealthAPI() HealthAPI {
	return HealthAPI{now: time.Now}
}

// Health is the response body of GET /api/health.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Get /api/health
func (api *HealthAPI) Health(c *gin.Context) {
	now := time.Now
	if api.now != nil {
		now = api.now
	}
	c.JSON(http.StatusOK, Health{
		Status:    "OK",
		Timestamp: now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

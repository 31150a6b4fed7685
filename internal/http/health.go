package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kabarin/kabar/internal/database"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Version string `json:"version,omitempty"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	status := "ok"
	message := "Server is running"
	statusCode := http.StatusOK

	if h.db != nil {
		sqlDB, err := h.db.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			status = "unhealthy"
			message = "database unreachable"
			statusCode = http.StatusServiceUnavailable
		}
	}

	c.JSON(statusCode, HealthResponse{
		Status:  status,
		Message: message,
		Version: h.version,
	})
}

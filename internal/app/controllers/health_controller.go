package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/studentregistry/internal/app/models/dto"
	"github.com/yigit/studentregistry/internal/db"
)

// HealthController reports liveness and database reachability
type HealthController struct {
	database *db.Database
}

// NewHealthController creates a new HealthController
func NewHealthController(database *db.Database) *HealthController {
	return &HealthController{database: database}
}

// Health pings the database
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	if err := c.database.DB.PingContext(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:   "unavailable",
			Database: c.database.Dialect.Name,
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status:   "ok",
		Database: c.database.Dialect.Name,
	})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/studentregistry/internal/app/services"
	"github.com/yigit/studentregistry/internal/middleware"
)

// StatsController serves aggregate reports
type StatsController struct {
	statsService services.StatsService
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService services.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// GetStats returns global counts
// @Summary Global statistics
// @Description Total, Active and Inactive counts plus students per course
// @Tags stats
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /stats [get]
func (c *StatsController) GetStats(ctx *gin.Context) {
	stats, err := c.statsService.GetStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// GetIntakeSummary returns the per-intake aggregate
// @Summary Intake summary
// @Description Keyed by intake label; students without one are grouped under "Unknown"
// @Tags stats
// @Produce json
// @Success 200 {object} map[string]models.IntakeSummary
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/summary [get]
func (c *StatsController) GetIntakeSummary(ctx *gin.Context) {
	summary, err := c.statsService.GetIntakeSummary(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yigit/studentregistry/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	statsController *controllers.StatsController,
	healthController *controllers.HealthController,
	metricsEnabled bool,
) {
	api := router.Group("/api")

	// Student routes. The static segments are matched before :id.
	students := api.Group("/students")
	{
		students.GET("", studentController.GetAllStudents)
		students.POST("", studentController.CreateStudent)
		students.GET("/search/:term", studentController.SearchStudents)
		students.POST("/upload", studentController.UploadStudents)
		students.GET("/summary", statsController.GetIntakeSummary)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}

	api.GET("/stats", statsController.GetStats)

	router.GET("/health", healthController.Health)

	if metricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

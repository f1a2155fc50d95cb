package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/studentregistry/docs"
)

// SetupSwagger configures the API documentation routes
func SetupSwagger(router *gin.Engine) {
	docs.RegisterRoutes(router)
}

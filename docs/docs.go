// Package docs serves the OpenAPI description of the student registry API
// and a Swagger UI that renders it.
package docs

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// OpenAPIPath is where the document is served
const OpenAPIPath = "/openapi.json"

//go:embed openapi.json
var openapiJSON []byte

// OpenAPI returns the raw OpenAPI 3 document
func OpenAPI() []byte {
	return openapiJSON
}

// RegisterRoutes wires the documentation endpoints into the Gin engine.
// - GET /openapi.json: OpenAPI 3.0 document
// - GET /swagger/*any: Swagger UI loading /openapi.json
func RegisterRoutes(r *gin.Engine) {
	r.GET(OpenAPIPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", openapiJSON)
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(OpenAPIPath)))
}

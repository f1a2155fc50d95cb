package middleware

import (
	"github.com/gin-gonic/gin"
)

// BindJSON decodes the request body into obj. On failure it writes a 400
// response and returns false; the handler should return immediately.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondBadRequest(c, "Invalid request format", err.Error())
		return false
	}
	return true
}

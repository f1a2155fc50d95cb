// Package web holds the browser UI served at the site root.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFiles embed.FS

// Static returns the UI assets rooted at the static directory
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// RegisterRoutes serves index.html at / and the other assets under /static
func RegisterRoutes(r *gin.Engine) {
	assets := Static()
	index, err := fs.ReadFile(assets, "index.html")
	if err != nil {
		panic(err)
	}

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	r.StaticFS("/static", http.FS(assets))
}

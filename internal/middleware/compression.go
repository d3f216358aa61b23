package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression gzips responses for clients that accept it. Rendered PDF
// reports and images are already compressed and /metrics is left to the
// Prometheus handler, which negotiates encoding itself.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedExtensions([]string{".pdf", ".png", ".gif", ".jpeg", ".jpg"}),
		gzip.WithExcludedPaths([]string{"/metrics"}),
	)
}

package utils

import (
	"log"

	"github.com/gin-gonic/gin"
)

type errorBodyLogger struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w errorBodyLogger) Write(b []byte) (int, error) {
	if status := w.gc.Writer.Status(); status >= 400 {
		log.Printf("HTTP %d: %s", status, string(b))
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware logs error response bodies in debug mode. It must
// run before gzip so it sees the plain body.
func ErrorLogMiddleware(c *gin.Context) {
	c.Writer = &errorBodyLogger{gc: c, ResponseWriter: c.Writer}
	c.Next()
}

package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// CacheWeek is the client cache lifetime for artifact bytes - stored
// content never changes for a given instance ID.
const CacheWeek = 7 * 24 * 3600

// NoCacheByDefault marks every response non-cacheable. End points that
// serve artifact bytes override it with CacheHeader.
func NoCacheByDefault(c *gin.Context) {
	c.Header("cache-control", "no-cache")
	c.Next()
}

// CacheHeader marks the response privately cacheable for maxAge seconds.
func CacheHeader(c *gin.Context, maxAge int) {
	c.Header("cache-control", "private, max-age="+strconv.Itoa(maxAge))
}

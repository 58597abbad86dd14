package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// parseBoolQuery reads a boolean query parameter, defaulting to false on
// absence or junk.
func parseBoolQuery(c *gin.Context, name string) bool {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

func parseFloatQuery(c *gin.Context, name string) float64 {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

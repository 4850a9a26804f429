package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := c.Param(param)
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

// RequireQuery reads a required query parameter and writes a 400 when absent.
func RequireQuery(c *gin.Context, name string) string {
	value := strings.TrimSpace(c.Query(name))
	if value == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing query parameter " + name,
		})
		return ""
	}
	return value
}

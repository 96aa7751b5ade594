package utils

import "github.com/gin-gonic/gin"

// GetBaseURL returns the API base URL for the current request
func GetBaseURL(c *gin.Context) string {
	return c.Request.URL.Scheme + "://" + c.Request.Host + "/api"
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// apikeyAuthentication is a middleware to check the api token of requests
func (s *Server) apikeyAuthentication(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiToken := c.GetHeader("Api-Token")
		if apiToken == "" || apiToken != key {
			abortWithEncoding(c, http.StatusForbidden, errorInvalidAPIToken)
			return
		}
		c.Next()
	}
}

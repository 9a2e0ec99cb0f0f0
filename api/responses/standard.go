// Package responses writes the JSON envelopes shared by every endpoint: a
// success payload carrying "success": true, or the uniform error body.
package responses

import (
	"net/http"

	"github.com/Aidin1998/trivia/pkg/errors"
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

// Success sends a 200 response with payload plus "success": true
func Success(c *gin.Context, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(http.StatusOK, payload)
}

// Error sends the uniform error body for err and aborts the chain. The status
// comes from the error kind; errors without a kind are 500s.
func Error(c *gin.Context, err error) {
	body := errors.BodyOf(err)
	c.AbortWithStatusJSON(body.Error, body)
}

// RequestID returns the id assigned to the current request.
func RequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDHeader)
}

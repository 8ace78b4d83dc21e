// Package handler contains the gin handlers and middleware of the
// development gateway. Every non-AI response is a models.Envelope.
package handler

import (
	"net/http"

	"github.com/dmitrijs2005/kotoba/internal/client/models"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserID    = "user_id"
	ctxEmail     = "email"
	ctxRequestID = "request_id"
)

func respond[T any](c *gin.Context, status int, data T, message string) {
	c.JSON(status, models.Envelope[T]{Success: true, Data: &data, Message: message})
}

func ack(c *gin.Context, status int, message string) {
	c.JSON(status, models.Ack{Success: true, Message: message})
}

func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.Ack{Success: false, Message: message})
}

// Health reports that the gateway is serving.
func Health(c *gin.Context) {
	ack(c, http.StatusOK, "ok")
}

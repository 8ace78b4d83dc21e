package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/kotoba/internal/gateway/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDMiddleware keeps the caller's X-Request-ID or assigns one, and
// echoes it on the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// LoggerMiddleware logs one structured line per request.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("request_id", c.GetString(ctxRequestID)),
			zap.String("user_id", c.GetString(ctxUserID)),
			zap.Duration("latency", time.Since(start)),
			zap.Int("size", c.Writer.Size()),
		)
	}
}

// AuthMiddleware validates the bearer token and stores the user id and email
// in the context. deny writes the rejection in the group's response format.
func AuthMiddleware(secret []byte, deny func(c *gin.Context, status int, message string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			deny(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			deny(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ParseToken(token, secret)
		if err != nil {
			deny(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ctxUserID, claims.Subject)
		c.Set(ctxEmail, claims.Email)
		c.Next()
	}
}

// SelfOnly rejects requests whose :id path parameter is not the caller.
func SelfOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("id") != c.GetString(ctxUserID) {
			Fail(c, http.StatusForbidden, "You can only access your own profile")
			return
		}
		c.Next()
	}
}

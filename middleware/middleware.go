package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	C "gadstag/config"
)

// cors prefix constants.
const PREFIX_PATH_GADS = "/gads/"

const HeaderRequestId = "X-Req-Id"

// CustomCors - customised cors configuration based on conditions.
func CustomCors() gin.HandlerFunc {
	return func(c *gin.Context) {
		corsConfig := cors.DefaultConfig()

		if strings.HasPrefix(c.Request.URL.Path, PREFIX_PATH_GADS) {
			corsConfig.AllowAllOrigins = true
			corsConfig.AddAllowHeaders("trace-id", "x-gtm-identifier",
				"x-gtm-default-domain", "x-gtm-api-key", "x-gtm-server-preview")
		} else if C.IsDevelopment() {
			corsConfig.AllowOrigins = []string{"http://localhost:8080", "http://localhost:3000"}
		}

		cors.New(corsConfig)(c)
		c.Next()
	}
}

// RequestIdGenerator attaches a request id when the client sent none.
func RequestIdGenerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Header.Get(HeaderRequestId) == "" {
			c.Request.Header.Set(HeaderRequestId, uuid.New().String())
		}
		c.Writer.Header().Set(HeaderRequestId, c.Request.Header.Get(HeaderRequestId))
		c.Next()
	}
}

// Logger writes one access log line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": c.Request.Header.Get(HeaderRequestId),
		}).Info("Processed request.")
	}
}

// Recovery turns handler panics into 500s instead of crashing the worker.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(log.Fields{
					"panic": r,
					"path":  c.Request.URL.Path,
				}).Error("Recovered from panic on request.")
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					gin.H{"error": "Internal server error"})
			}
		}()
		c.Next()
	}
}

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pulsecraft/brand-pulse/internal/platform/observability"
)

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		s.logger.Info().
			Int(logFieldStatus, c.Writer.Status()).
			Str(logFieldMethod, c.Request.Method).
			Str(logFieldPath, c.Request.URL.Path).
			Dur(logFieldLatency, time.Since(start)).
			Str(logFieldClientIP, c.ClientIP()).
			Msg("http request")
	}
}

func (s *Server) requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// The route template keeps label cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = pathUnmatched
		}

		observability.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error().
					Interface(logFieldPanic, r).
					Str(logFieldMethod, c.Request.Method).
					Str(logFieldPath, c.Request.URL.Path).
					Msg("handler panic")

				c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
			}
		}()

		c.Next()
	}
}

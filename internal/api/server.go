// Package api serves the latest snapshot over REST. Every handler reads
// whatever run completed last from the snapshot holder; nothing blocks on a
// refresh in flight.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pulsecraft/brand-pulse/internal/snapshot"
)

// Server is the dashboard API server.
type Server struct {
	port    int
	holder  *snapshot.Holder
	trigger chan<- struct{}
	logger  *zerolog.Logger
}

// NewServer creates the API server. trigger requests an immediate refresh
// from the worker loop; the send is non-blocking, a pending request is
// reported as already scheduled.
func NewServer(port int, holder *snapshot.Holder, trigger chan<- struct{}, logger *zerolog.Logger) *Server {
	return &Server{
		port:    port,
		holder:  holder,
		trigger: trigger,
		logger:  logger,
	}
}

// Router builds the gin engine with middleware and all routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(s.requestLogger(), s.requestMetrics(), s.recovery())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/summary", s.getSummary)
		v1.GET("/mentions", s.getMentions)
		v1.GET("/aggregates", s.getAggregates)
		v1.GET("/flavors", s.getFlavors)
		v1.GET("/comparison", s.getComparison)
		v1.GET("/trends/yearly", s.getYearlyTrends)
		v1.GET("/volume/hourly", s.getHourlyVolume)
		v1.POST("/refresh", s.postRefresh)
	}

	return router
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		//nolint:contextcheck // shutdown needs a fresh context, the parent is already done
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("api server shutdown")
		}
	}()

	s.logger.Info().Int(logFieldPort, s.port).Msg("api server listening")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}

	return nil
}

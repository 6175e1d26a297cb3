package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"govscheme/internal/config"
	"govscheme/internal/handlers"
	"govscheme/internal/logger"
	"govscheme/internal/middleware"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != "" {
			config.Cfg.Port = servePort
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := &http.Server{
			Addr:              ":" + config.Cfg.Port,
			Handler:           buildHandler(ctx, handlers.NewServer(newController())),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("server: shutdown failed", map[string]interface{}{"error": err})
			}
		}()

		logger.Info("server starting", map[string]interface{}{"port": config.Cfg.Port, "backend": config.Cfg.BackendURL})
		fmt.Fprintf(cmd.OutOrStdout(), "GovScheme running on http://localhost:%s\n", config.Cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("server stopped", nil)
		return nil
	},
}

// buildHandler wraps the app: Recovery → RequestLog → SecurityHeaders →
// Gzip (if enabled) → rate limiter. /metrics sits outside the chain since
// promhttp compresses on its own.
func buildHandler(ctx context.Context, s *handlers.Server) http.Handler {
	app := http.NewServeMux()
	s.Routes(app)

	limiter := middleware.NewRateLimiter(ctx, config.Cfg.RateLimitRPS, config.Cfg.RateLimitBurst, time.Second, http.MethodPost)
	var handler http.Handler = limiter.Middleware(app)
	if config.Cfg.GzipEnabled {
		handler = middleware.Gzip(handler)
	}
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.RequestLog(handler)
	handler = middleware.Recovery(handler)

	root := http.NewServeMux()
	if config.Cfg.MetricsEnabled {
		root.Handle("/metrics", promhttp.Handler())
	}
	root.Handle("/", handler)
	return root
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides GOVSCHEME_PORT)")
}

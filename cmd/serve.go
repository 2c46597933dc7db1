package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agriprofessor/soiladvisor/internal/observability"
	"github.com/agriprofessor/soiladvisor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assessment HTTP API",
	Long: `Serve the assessment API over HTTP.

Endpoints:
  POST /v1/assessments   classify a measurement set
  GET  /v1/thresholds    active threshold values
  GET  /v1/glossary      glossary entries, ?q= to look one up
  GET  /healthz          liveness probe
  GET  /metrics          Prometheus metrics`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.Int("port", 0, "listen port (default from config)")
	f.String("profile", "", "threshold profile YAML (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("serve"); err != nil {
		return err
	}

	profile, _ := cmd.Flags().GetString("profile")
	cls, err := newClassifier(profile)
	if err != nil {
		return err
	}

	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}

	srv := server.New(server.Options{
		Addr:         cfg.Server.Addr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
		RateLimitRPS: cfg.Server.RateLimitRPS,
		CORSOrigins:  cfg.Server.CORSAllowedOrigins,
	}, cls, observability.NewMetrics(), clockwork.NewRealClock())

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("server shutdown", zap.Error(err))
		}
	}()

	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}

	return nil
}

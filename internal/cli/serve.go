package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"gudang/internal/app"
	"gudang/internal/scheduler"
	"gudang/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd starts the HTTP server, the audit consumer and the purge job,
// and shuts them down on SIGINT or SIGTERM.
func NewServeCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, rt)
		},
	}
}

func serve(ctx context.Context, rt *Runtime) error {
	cfg, log := rt.Config, rt.Log

	if cfg.JWTSecretGenerated {
		log.Warn("JWT_SECRET is not set; using a random secret, tokens will not survive a restart")
	}

	c, err := app.NewContainer(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Error("failed to close resources", zap.Error(err))
		}
	}()

	if err := c.Migrate(); err != nil {
		return err
	}

	if c.MQ != nil {
		if err := c.MQ.Consume(rabbitmq.AuditHandler(log)); err != nil {
			log.Error("failed to start audit consumer", zap.Error(err))
		}
	}

	purge := scheduler.NewTokenPurgeScheduler(c.Tokens, cfg.PurgeSchedule, log)
	if err := purge.Start(ctx); err != nil {
		return err
	}
	defer purge.Stop()

	srv := app.NewServer(c)
	listenErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.AppPort), zap.String("env", cfg.Env))
		listenErr <- srv.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := srv.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server gracefully stopped")
	return nil
}


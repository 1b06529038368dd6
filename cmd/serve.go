package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmehdipour/churn-insights/internal/db"
	httpSrv "github.com/jmehdipour/churn-insights/internal/http"
	"github.com/jmehdipour/churn-insights/internal/http/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reporting HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.log.Sync() }()
		cfg := a.cfg

		var counter middleware.Counter
		if cfg.Redis.Enabled {
			redisClient, err := db.NewRedisClient(cmd.Context(), db.RedisOpts{
				Addr:        cfg.Redis.Addr,
				Password:    cfg.Redis.Password,
				DB:          cfg.Redis.DB,
				DialTimeout: cfg.Redis.DialTimeout,
			})
			if err != nil {
				return fmt.Errorf("redis connect: %w", err)
			}
			defer func() { _ = redisClient.Close() }()
			counter = middleware.RedisCounter{Client: redisClient}
		} else {
			a.log.Info("redis disabled, rate limiting off")
		}

		// generate up front so the first request does not pay for it
		if _, err := a.prov.Get(cmd.Context()); err != nil {
			return fmt.Errorf("generate dataset: %w", err)
		}

		server := httpSrv.NewServer(cfg, a.prov, counter, a.log)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			a.log.Info("signal received, shutting down", zap.String("signal", sig.String()))
		case err := <-errCh:
			if err != nil {
				a.log.Error("http server exited", zap.Error(err))
			}
		}

		timeout := cfg.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_ = server.Shutdown(ctx)

		return nil
	},
}

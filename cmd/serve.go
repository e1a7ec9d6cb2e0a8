package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/feasibility-cli/internal/config"
	"github.com/sells-group/feasibility-cli/internal/display"
	"github.com/sells-group/feasibility-cli/internal/server"
)

const (
	shutdownTimeout    = 10 * time.Second
	cacheSweepInterval = time.Hour
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		env, err := initEnv(ctx, cfg, "serve", true)
		if err != nil {
			return err
		}
		defer env.Close()

		scfg, err := serverConfig(cfg, env.Rates)
		if err != nil {
			return err
		}
		api := server.New(env.Engine, env.Advisor, scfg)
		defer api.Close()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           api.Handler(),
			ReadHeaderTimeout: time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error { return runServer(gCtx, srv) })
		if exp, ok := env.Cache.(expirer); ok {
			g.Go(func() error {
				sweepExpired(gCtx, exp, cacheSweepInterval)
				return nil
			})
		}
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// serverConfig maps the server and display config sections.
func serverConfig(c *config.Config, rates display.Rates) (server.Config, error) {
	cur, err := display.ParseCurrency(strings.TrimSpace(c.Display.Currency))
	if err != nil {
		return server.Config{}, err
	}
	scfg := server.DefaultConfig()
	scfg.RatePerMinute = c.Server.RatePerMinute
	scfg.Burst = c.Server.Burst
	if len(c.Server.CORSOrigins) > 0 {
		scfg.CORSOrigins = c.Server.CORSOrigins
	}
	scfg.Rates = rates
	scfg.DefaultCurrency = cur
	return scfg, nil
}

// runServer serves until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zap.L().Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gCtx), shutdownTimeout)
		defer cancel()
		return eris.Wrap(srv.Shutdown(shutdownCtx), "server shutdown")
	})

	return g.Wait()
}

// expirer is implemented by the SQL narrative caches.
type expirer interface {
	DeleteExpired(ctx context.Context) (int, error)
}

// sweepExpired deletes expired cache rows every interval until ctx is done.
func sweepExpired(ctx context.Context, c expirer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := c.DeleteExpired(ctx)
			if err != nil {
				zap.L().Warn("sweep narrative cache", zap.Error(err))
				continue
			}
			if n > 0 {
				zap.L().Debug("swept narrative cache", zap.Int("deleted", n))
			}
		}
	}
}

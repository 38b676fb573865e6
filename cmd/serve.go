package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathbuddy/internal/llm"
	"github.com/abhisek/mathbuddy/internal/session"
	"github.com/abhisek/mathbuddy/internal/web"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the practice widget over HTTP",
	Long: `Serve a single-page practice widget and its JSON API. Every browser gets
its own anonymous session, identified by a cookie and dropped after it has
been idle for the session TTL.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", "", "Listen address (overrides MATHBUDDY_ADDR, default :8080)")
	f.Duration("session-ttl", 0, "Idle time before a session is dropped (overrides MATHBUDDY_SESSION_TTL)")
	f.Bool("shared-key", false, "Give every session the server's own API key")
	f.Bool("dev", false, "Allow the session cookie over plain HTTP")
}

func runServe(cmd *cobra.Command, args []string) error {
	setupServerLogging()

	cfg, err := serverConfig(cmd)
	if err != nil {
		return err
	}

	settings, err := practiceSettings(cmd)
	if err != nil {
		return err
	}

	env, err := openOracle(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := env.Close(); closeErr != nil {
			slog.Error("close store", "error", closeErr)
		}
	}()

	var shared llm.Provider
	if cfg.SharedKey {
		shared, err = env.envProvider(cmd.Context())
		if err != nil {
			return fmt.Errorf("connect %s: %w", env.cfg.Provider, err)
		}
		if shared == nil {
			return fmt.Errorf("--shared-key needs an API key in the environment for %s", env.cfg.Provider)
		}
	}

	server := web.NewServer(cfg, func() *session.Controller {
		return env.controller(settings, shared)
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.Registry().StartSweeper(ctx, cfg.SweepInterval)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      env.cfg.Timeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening",
			"addr", srv.Addr,
			"provider", env.cfg.Provider,
			"shared_key", cfg.SharedKey,
			"dev", cfg.Dev,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	stop()

	slog.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// serverConfig loads the env config and applies the flags that were set.
func serverConfig(cmd *cobra.Command) (*web.Config, error) {
	cfg, err := web.Load()
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("addr") {
		cfg.Addr, _ = f.GetString("addr")
	}
	if f.Changed("session-ttl") {
		cfg.SessionTTL, _ = f.GetDuration("session-ttl")
	}
	if f.Changed("shared-key") {
		cfg.SharedKey, _ = f.GetBool("shared-key")
	}
	if f.Changed("dev") {
		cfg.Dev, _ = f.GetBool("dev")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

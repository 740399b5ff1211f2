// Command server exposes the matcher over HTTP.
//
// Endpoints:
//
//	GET  /live, /ready, /health
//	GET  /api/v1/match?ipa=...      one transcription
//	POST /api/v1/match              {"ipa": [...]} up to 100 transcriptions
//	GET  /api/v1/normalize?ipa=...  canonical forms only
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/heartmarshall/ipa-mnemonic/internal/app"
	"github.com/heartmarshall/ipa-mnemonic/internal/config"
	"github.com/heartmarshall/ipa-mnemonic/internal/transport/middleware"
	"github.com/heartmarshall/ipa-mnemonic/internal/transport/rest"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run owns every resource so its defers execute before main exits.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := app.BuildEngine(ctx, cfg, logger)
	if err != nil {
		logger.Error("build engine", slog.String("error", err.Error()))
		return err
	}
	defer engine.Close()

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := rest.NewRouter(
		rest.NewHealthHandler(app.BuildVersion(), engine.HealthChecks()),
		rest.NewMatchHandler(engine, logger, cfg.Picture.MaxSegments),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimit),
	)

	srv := newServer(cfg.Server, handler)
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Error("listen", slog.String("error", err.Error()))
		return err
	}

	return serve(ctx, logger, srv, ln, cfg.Server.ShutdownTimeout)
}

// newServer builds the HTTP server. Request contexts are not derived from
// the signal context, so in-flight requests keep running while Shutdown
// drains them.
func newServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.Background() },
	}
}

// serve runs srv on ln until ctx is done, then shuts it down, waiting up to
// shutdownTimeout for in-flight requests.
func serve(ctx context.Context, logger *slog.Logger, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.String("error", err.Error()))
		return err
	}
	return nil
}

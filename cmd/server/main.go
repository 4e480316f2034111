// Command server runs the association website: HTML rendering over the
// configured content backend, the revalidation webhook, health and
// metrics endpoints.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"usher-web/internal/config"
	hhttp "usher-web/internal/handler/http"
	"usher-web/internal/handler/http/requestid"
	"usher-web/internal/handler/http/revalidate"
	"usher-web/internal/handler/http/site"
	"usher-web/internal/infra/adapter/source/api"
	"usher-web/internal/infra/adapter/source/snapshot"
	"usher-web/internal/infra/cache"
	"usher-web/internal/observability/logging"
	"usher-web/internal/repository"
	"usher-web/internal/usecase/content"
	pkgconfig "usher-web/pkg/config"
)

const maxRequestBodyBytes = 1 << 20 // 1 MiB, only the webhook accepts bodies

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.LoadContentConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	handler, err := buildHandler(cfg, logger)
	if err != nil {
		logger.Error("server setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(handler, cfg, logger)
}

// buildHandler wires the content backend, service and HTTP routes.
func buildHandler(cfg config.ContentConfig, logger *slog.Logger) (http.Handler, error) {
	var (
		source repository.ContentSource
		store  *cache.TagStore
	)
	switch cfg.Source {
	case config.SourceSnapshot:
		source = snapshot.NewSource(cfg.SnapshotDir)
	default:
		store = cache.NewTagStore(cfg.CacheTTL, nil)
		source = api.NewClient(cfg.APIBaseURL, store, logger)
	}

	svc := content.NewService(source, cfg.APIBaseURL, logger)

	attachmentsDir := ""
	if cfg.Source == config.SourceSnapshot {
		attachmentsDir = cfg.AttachmentsDir
	}
	siteHandler, err := site.NewHandler(svc, site.Config{
		AttachmentsDir: attachmentsDir,
		SiteBaseURL:    pkgconfig.GetEnvString("SITE_BASE_URL", "https://member.usher.org.tw"),
	}, logger)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	siteHandler.Register(mux)
	mux.Handle("GET /healthz", hhttp.NewHealthHandler(svc.Mode()))
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	if cfg.RevalidateToken != "" {
		// In snapshot mode there is no cache; the webhook still answers
		// so the CMS does not need mode-aware configuration.
		var invalidator revalidate.Invalidator
		if store != nil {
			invalidator = store
		}
		revalidate.NewHandler(cfg.RevalidateToken, invalidator, logger).Register(mux)
	} else {
		logger.Warn("REVALIDATE_TOKEN not set, revalidation endpoint disabled")
	}

	logger.Info("content backend ready",
		slog.String("source", cfg.Source),
		slog.Duration("cache_ttl", cfg.CacheTTL))

	// Middleware, outermost first.
	var handler http.Handler = mux
	handler = hhttp.MetricsMiddleware(handler)
	handler = hhttp.Logging(logger)(handler)
	handler = hhttp.LimitRequestBody(maxRequestBodyBytes)(handler)
	handler = requestid.Middleware(handler)
	handler = hhttp.Recover(logger)(handler)
	return handler, nil
}

// runServer starts the HTTP server and blocks until SIGINT or SIGTERM,
// then drains connections with a shutdown timeout.
func runServer(handler http.Handler, cfg config.ContentConfig, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := pkgconfig.GetEnvString("LISTEN_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("content_source", cfg.Source))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

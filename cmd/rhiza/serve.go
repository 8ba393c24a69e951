package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rhiza/internal/client"
	"rhiza/internal/engine"
	"rhiza/internal/handler"
	"rhiza/internal/hub"
	"rhiza/internal/repository/sqlite"
	"rhiza/internal/service"
	"rhiza/internal/watcher"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the visualization API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if path != "" {
		logger.Info("config loaded", zap.String("path", path))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Payload cache
	repo, err := sqlite.New(cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer repo.Close()
	logger.Info("cache opened", zap.String("path", cfg.Cache.Path))

	src := client.New(cfg.Backend.URL,
		client.WithHTTPClient(&http.Client{Timeout: cfg.Backend.Timeout.Duration()}),
		client.WithCache(repo, cfg.Cache.TTL.Duration()),
		client.WithLogger(logger.Named("client")),
	)

	bus := service.NewEventBus()
	themes := service.NewThemeStore(nil, bus, logger.Named("themes"))
	if cfg.Render.ThemeFile != "" {
		if err := themes.LoadFile(cfg.Render.ThemeFile); err != nil {
			return fmt.Errorf("theme file: %w", err)
		}
	} else if err := themes.UsePreset(cfg.Render.Preset); err != nil {
		return err
	}

	containers := make([]engine.Container, 0, len(cfg.Render.Containers))
	for _, c := range cfg.Render.Containers {
		containers = append(containers, engine.Container{ID: c.ID, Width: c.Width, Height: c.Height})
	}
	svc := service.NewVisualizationService(src, themes, bus, service.Options{
		Containers:    containers,
		Backend:       cfg.Render.Backend,
		TickInterval:  cfg.Render.TickInterval.Duration(),
		FrameInterval: cfg.Render.FrameInterval.Duration(),
		Logger:        logger.Named("visualization"),
	})
	defer svc.Shutdown()

	sseHub := hub.New(hub.WithLogger(logger.Named("hub")))

	router := handler.NewRouter(handler.RouterConfig{
		Service:     svc,
		Events:      sseHub,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger.Named("http"),
	})
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sseHub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		forwardEvents(gctx, bus, sseHub)
		return nil
	})

	g.Go(func() error {
		purgeCache(gctx, repo, cfg.Cache.PurgeInterval.Duration(), logger)
		return nil
	})

	if cfg.Render.ThemeFile != "" {
		w := watcher.New(cfg.Render.ThemeFile, func(p string) {
			_ = themes.LoadFile(p)
		}).WithLogger(logger.Named("watcher"))
		g.Go(func() error {
			return w.Watch(gctx)
		})
	}

	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// forwardEvents relays bus events to SSE clients, addressed by container
func forwardEvents(ctx context.Context, bus *service.EventBus, h *hub.Hub) {
	events := make(chan service.Event, 256)
	bus.Subscribe(events)
	defer bus.Unsubscribe(events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			h.Broadcast(ev.Container, ev)
		}
	}
}

// purgeCache drops expired payloads on a fixed interval
func purgeCache(ctx context.Context, repo *sqlite.Repository, every time.Duration, logger *zap.Logger) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("cache purge failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Debug("cache purged", zap.Int64("removed", n))
			}
		}
	}
}

package main

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

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/radutopala/eventscout/internal/config"
	"github.com/radutopala/eventscout/internal/events"
	"github.com/radutopala/eventscout/internal/mcpserver"
	"github.com/radutopala/eventscout/internal/metrics"
	"github.com/radutopala/eventscout/internal/rpc"
	"github.com/radutopala/eventscout/internal/search"
	"github.com/radutopala/eventscout/internal/tools"
	transporthttp "github.com/radutopala/eventscout/internal/transport/http"
	"github.com/radutopala/eventscout/internal/vectorstore"
)

// set at build time via -ldflags "-X main.version=..."
var version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "eventscout",
		Short: "Natural-language search over an event catalog",
		Long: `Eventscout indexes an event catalog into an embedding index and answers
natural-language queries with structured-filter extraction and semantic
ranking. The index is exposed over HTTP, MCP, and a line-oriented
JSON-RPC channel.`,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newStdioCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("eventscout %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// components bundles the wired service graph.
type components struct {
	cfg       config.Config
	engine    *search.Engine
	refresher *search.Refresher
	registry  *prometheus.Registry
	closer    func()
}

func buildComponents(logger *slog.Logger) (*components, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var source events.Source
	if cfg.Events.APIURL != "" {
		source = events.NewAPISource(cfg.Events.APIURL, cfg.Events.Timeout, logger)
	} else {
		logger.Info("No events API configured, using built-in sample catalog")
		source = &events.StaticSource{Events: events.SampleEvents()}
	}

	var store vectorstore.Store
	closer := func() {}
	if cfg.Index.Path != "" {
		sqliteStore, err := vectorstore.NewSQLiteStore(cfg.Index.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("open index store: %w", err)
		}
		store = sqliteStore
		closer = func() { _ = sqliteStore.Close() }
		logger.Info("Using persistent index", "path", cfg.Index.Path)
	} else {
		store = vectorstore.NewInMemoryStore(logger)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	refresher := search.NewRefresher(search.RefresherConfig{
		Source:       source,
		Store:        store,
		Logger:       logger,
		Metrics:      m,
		Collection:   cfg.Index.Collection,
		EmbedderKind: cfg.Index.Embedder,
		BatchSize:    cfg.Index.BatchSize,
		Interval:     cfg.Index.RefreshInterval,
	})
	engine := search.NewEngine(refresher, logger, m)

	return &components{
		cfg:       cfg,
		engine:    engine,
		refresher: refresher,
		registry:  registry,
		closer:    closer,
	}, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API with periodic index refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))

			c, err := buildComponents(logger)
			if err != nil {
				return err
			}
			defer c.closer()

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			// Warm the index; search still works later via lazy init if
			// this fails now.
			if err := c.refresher.Ensure(ctx); err != nil {
				logger.Error("Initial index build failed, serving degraded", "error", err)
			}
			go c.refresher.Run(ctx)

			deps := &transporthttp.ServerDeps{
				Engine:    c.engine,
				Refresher: c.refresher,
				Logger:    logger,
				Gatherer:  c.registry,
			}
			server := &http.Server{
				Addr:    ":" + c.cfg.Server.Port,
				Handler: deps.Routes(),
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()
				_ = server.Shutdown(shutdownCtx)
			}()

			logger.Info("Starting HTTP server", "port", c.cfg.Server.Port, "version", version)
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cleanup := fileLogger()
			defer cleanup()

			c, err := buildComponents(logger)
			if err != nil {
				return err
			}
			defer c.closer()

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if err := c.refresher.Ensure(ctx); err != nil {
				logger.Error("Initial index build failed, serving degraded", "error", err)
			}
			go c.refresher.Run(ctx)

			server := mcpserver.New("eventscout", version, c.engine, c.refresher, logger)
			logger.Info("Starting MCP server over stdio", "version", version)
			return server.Run(ctx, &mcpsdk.StdioTransport{})
		},
	}
}

func newStdioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Run the line-oriented JSON-RPC dispatcher over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cleanup := fileLogger()
			defer cleanup()

			c, err := buildComponents(logger)
			if err != nil {
				return err
			}
			defer c.closer()

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if err := c.refresher.Ensure(ctx); err != nil {
				logger.Error("Initial index build failed, serving degraded", "error", err)
			}
			go c.refresher.Run(ctx)

			registry, err := tools.NewEventRegistry(c.engine, c.refresher, logger)
			if err != nil {
				return err
			}

			logger.Info("Starting JSON-RPC dispatcher over stdio", "version", version)
			return rpc.NewDispatcher(registry, logger).Serve(ctx, os.Stdin, os.Stdout)
		},
	}
}

// fileLogger logs to a file because stdout carries the protocol when serving
// stdio transports.
func fileLogger() (*slog.Logger, func()) {
	logPath := os.Getenv("EVENTSCOUT_LOG_FILE")
	if logPath == "" {
		logPath = "/tmp/eventscout.log"
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		// Fallback to stderr if we can't open the log file
		return slog.New(slog.NewTextHandler(os.Stderr, nil)), func() {}
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return logger, func() { _ = logFile.Close() }
}

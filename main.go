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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sentiment-insight/analyzer"
	"sentiment-insight/config"
	"sentiment-insight/handlers"
	"sentiment-insight/oracles"
	"sentiment-insight/severity"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "sentiment-insight",
		Short: "Sentiment Insight Analyzer API server",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	checkBuckets := &cobra.Command{
		Use:   "check-buckets [file]",
		Short: "Validate a phrase-bucket data file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckBuckets(args)
		},
	}

	root.AddCommand(serve, checkBuckets)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe() error {
	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	buckets, err := loadBuckets(cfg, log)
	if err != nil {
		return err
	}

	timeout := cfg.Oracles.TimeoutDuration()
	resolver := severity.New(cfg.Severity, buckets)

	var distress oracles.DistressScorer
	if cfg.Severity.Strategy == "bucket_weighted" && cfg.Oracles.DistressURL != "" {
		distress = oracles.NewHTTPDistressScorer(cfg.Oracles.DistressURL, timeout)
	}

	a := analyzer.New(
		cfg,
		resolver,
		oracles.NewHTTPDetector(cfg.Oracles.DetectURL, timeout),
		oracles.NewHTTPTranslator(cfg.Oracles.TranslateURL, cfg, timeout),
		oracles.NewHTTPClassifier(cfg.Oracles.ClassifyURL, timeout),
		distress,
		oracles.NewYouTubeSearcher(cfg.Oracles.YouTubeKey, timeout),
		log,
	)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handlers.New(a, log).Register(r)

	log.Info("starting server",
		zap.String("addr", cfg.Server.Addr),
		zap.String("strategy", cfg.Severity.Strategy),
		zap.Bool("recommendations", cfg.Oracles.YouTubeKey != ""),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}
	return serveWithShutdown(ctx, srv, drainTimeout, log)
}

// drainTimeout bounds how long in-flight requests may run after a
// shutdown signal.
const drainTimeout = 15 * time.Second

// serveWithShutdown runs srv until it fails or ctx is cancelled, then
// drains in-flight requests before returning.
func serveWithShutdown(ctx context.Context, srv *http.Server, drain time.Duration, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("drain", drain))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), drain)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// loadBuckets falls back to the built-in phrase data when no bucket
// file is present on disk.
func loadBuckets(cfg *config.Config, log *zap.Logger) (*severity.BucketSet, error) {
	if cfg.Severity.BucketFile == "" {
		return severity.DefaultBuckets(), nil
	}
	buckets, err := severity.LoadBuckets(cfg.Severity.BucketFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("bucket file missing, using built-in phrases",
				zap.String("path", cfg.Severity.BucketFile))
			return severity.DefaultBuckets(), nil
		}
		return nil, fmt.Errorf("load buckets: %w", err)
	}
	log.Info("loaded phrase buckets",
		zap.String("path", cfg.Severity.BucketFile),
		zap.String("version", buckets.Version),
		zap.Int("buckets", len(buckets.Buckets)),
	)
	return buckets, nil
}

func runCheckBuckets(args []string) error {
	path := "config/buckets.yaml"
	if len(args) == 1 {
		path = args[0]
	}

	buckets, err := severity.LoadBuckets(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s: version %s, %d buckets\n", path, buckets.Version, len(buckets.Buckets))
	for _, b := range buckets.Buckets {
		fmt.Printf("  %-12s weight %.2f  %d phrases\n", b.Name, b.Weight, len(b.Phrases))
	}
	return nil
}

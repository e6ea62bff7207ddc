package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zhouzirui/emotion-detector/backend/internal/apperr"
	"github.com/zhouzirui/emotion-detector/backend/internal/config"
	"github.com/zhouzirui/emotion-detector/backend/internal/handler"
	"github.com/zhouzirui/emotion-detector/backend/internal/logging"
	"github.com/zhouzirui/emotion-detector/backend/internal/metrics"
	emotionservice "github.com/zhouzirui/emotion-detector/backend/internal/service/emotion"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.Init(cfg.Log.Level, cfg.Log.Format)
	if envErr != nil {
		logger.Warn("failed to load .env file, continuing with system environment variables only",
			slog.String("error", envErr.Error()))
	}

	// Initialize metrics registry
	var registry *prometheus.Registry
	var analysisMetrics *metrics.AnalysisMetrics
	if cfg.Metrics.Enabled {
		registry = metrics.NewRegistry()
		analysisMetrics = metrics.NewAnalysisMetrics(registry)
	}

	// Initialize the upstream emotion scorer
	scorer, err := newScorer(ctx, cfg)
	if err != nil {
		logger.Warn("emotion scorer unavailable, /analyze will fail until configured",
			slog.String("provider", cfg.Analysis.Provider),
			slog.String("error", err.Error()))
	} else {
		logger.Info("emotion scorer initialized", slog.String("provider", scorer.Name()))
	}

	emotionSvc := emotionservice.NewService(scorer, emotionservice.Config{
		MinWords: cfg.Analysis.MinWords,
	}, analysisMetrics)

	router, err := handler.NewRouter(handler.Options{
		Analyzer:     emotionSvc,
		Errors:       apperr.Writer{ExposeInternal: cfg.Analysis.ExposeErrors},
		MaxBodyBytes: cfg.Analysis.MaxBodyBytes,
		MinWords:     cfg.Analysis.MinWords,
		Registry:     registry,
		Logger:       logger,
	})
	if err != nil {
		logger.Error("failed to build router", slog.String("error", err.Error()))
		os.Exit(1)
	}

	startServer(ctx, cfg.Server, router)
}

// newScorer 根据 EMOTION_PROVIDER 创建打分服务；返回 nil Scorer 表示不可用。
func newScorer(ctx context.Context, cfg *config.Config) (emotionservice.Scorer, error) {
	switch cfg.Analysis.Provider {
	case config.ProviderArk:
		chatModel, err := cfg.AI.NewChatModel(ctx)
		if err != nil {
			return nil, err
		}
		scorer, err := emotionservice.NewLLMScorer(ctx, chatModel)
		if err != nil {
			return nil, err
		}
		return scorer, nil
	default:
		scorer, err := emotionservice.NewWatsonScorer(cfg.Watson)
		if err != nil {
			return nil, err
		}
		return scorer, nil
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("Emotion Detector listening", slog.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		slog.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zhouzirui/emotion-detector/backend/internal/apperr"
	"github.com/zhouzirui/emotion-detector/backend/internal/handler/emotion"
	"github.com/zhouzirui/emotion-detector/backend/internal/handler/home"
	"github.com/zhouzirui/emotion-detector/backend/internal/metrics"
	middlewarePkg "github.com/zhouzirui/emotion-detector/backend/internal/middleware"
)

// Options 汇总路由需要的依赖。Registry 为 nil 时不暴露 /metrics。
type Options struct {
	Analyzer     emotion.Analyzer
	Errors       apperr.Writer
	MaxBodyBytes int64
	MinWords     int
	Registry     *prometheus.Registry
	Logger       *slog.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(opts Options) (http.Handler, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger))
	// 指标中间件需位于 Recoverer 之外，才能记录 panic 后写出的 500。
	if opts.Registry != nil {
		r.Use(metrics.NewHTTPMetrics(opts.Registry).Middleware)
	}
	r.Use(middlewarePkg.Recoverer(opts.Errors))
	r.Use(middlewarePkg.CORS)

	homeHandler, err := home.New(opts.MinWords)
	if err != nil {
		return nil, err
	}
	homeHandler.RegisterRoutes(r)

	emotion.New(opts.Analyzer, opts.Errors, opts.MaxBodyBytes).RegisterRoutes(r)

	if opts.Registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(opts.Registry))
	}

	return r, nil
}

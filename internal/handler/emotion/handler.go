package emotion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	analysis "github.com/zhouzirui/emotion-detector/backend/internal/analysis/emotion"
	"github.com/zhouzirui/emotion-detector/backend/internal/apperr"
	"github.com/zhouzirui/emotion-detector/backend/internal/model/emotion"
	"github.com/zhouzirui/emotion-detector/backend/pkg/utils"
)

// Analyzer 抽象情绪分析业务，便于测试与替换实现
type Analyzer interface {
	Analyze(ctx context.Context, text string) (analysis.Scores, error)
	Provider() string
	Ready() bool
}

// Handler 情绪分析的HTTP处理器
type Handler struct {
	analyzer     Analyzer
	errs         apperr.Writer
	maxBodyBytes int64
}

// New 创建情绪分析处理器，maxBodyBytes <= 0 时不限制请求体大小
func New(analyzer Analyzer, errs apperr.Writer, maxBodyBytes int64) *Handler {
	return &Handler{
		analyzer:     analyzer,
		errs:         errs,
		maxBodyBytes: maxBodyBytes,
	}
}

// RegisterRoutes 注册情绪分析相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze", h.handleAnalyze)
	r.Get("/healthz", h.handleHealth)
}

// handleAnalyze 解析请求体，调用分析服务并返回九种情绪分数
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload emotion.AnalyzeRequest
	if err := h.decodeJSON(w, r, &payload); err != nil {
		h.errs.Write(w, r, apperr.Malformed(err))
		return
	}

	scores, err := h.analyzer.Analyze(r.Context(), payload.Text)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, scores)
}

// handleHealth 健康检查
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, emotion.HealthResponse{
		Status:   "ok",
		Provider: h.analyzer.Provider(),
		Ready:    h.analyzer.Ready(),
	})
}

// decodeJSON 要求请求体恰好是一个 JSON 值，与 Content-Type 无关
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected data after json value")
	}
	return nil
}

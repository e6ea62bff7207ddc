package home

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/index.html
var templates embed.FS

const pageTitle = "Emotion Detector"

// Handler 首页处理器，页面在启动时渲染一次
type Handler struct {
	page []byte
}

// New 渲染首页模板，minWords 用于输入框提示
func New(minWords int) (*Handler, error) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse home template: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		Title    string
		MinWords int
	}{Title: pageTitle, MinWords: max(minWords, 1)}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render home template: %w", err)
	}

	return &Handler{page: buf.Bytes()}, nil
}

// RegisterRoutes 注册首页路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleHome)
}

func (h *Handler) handleHome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.page); err != nil {
		slog.Warn("failed to write home page", slog.String("error", err.Error()))
	}
}

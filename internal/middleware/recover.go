package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/emotion-detector/backend/internal/apperr"
)

// Recoverer 把处理过程中的 panic 转换为 500 JSON 响应，进程继续运行。
func Recoverer(errs apperr.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				slog.ErrorContext(r.Context(), "panic recovered",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())))

				errs.Write(w, r, apperr.Recovered(rec))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

package apperr

import (
	"log/slog"
	"net/http"

	"github.com/zhouzirui/emotion-detector/backend/internal/model/emotion"
	"github.com/zhouzirui/emotion-detector/backend/pkg/utils"
)

// Writer 负责把错误统一写成 JSON 响应。
type Writer struct {
	// ExposeInternal 为 false 时，500 响应不回显原始错误描述。
	ExposeInternal bool
}

// Write 根据错误类别写出状态码与响应体。
func (w Writer) Write(rw http.ResponseWriter, r *http.Request, err error) {
	appErr := From(err)
	if appErr == nil {
		return
	}

	status := appErr.HTTPStatus()
	body := emotion.ErrorResponse{
		Error:      appErr.Message,
		Suggestion: appErr.Suggestion,
	}

	if appErr.Kind == KindInternal {
		if !appErr.logged {
			slog.ErrorContext(r.Context(), "request failed",
				slog.String("path", r.URL.Path),
				slog.String("error", appErr.Message))
		}
		if !w.ExposeInternal {
			body.Error = "internal server error"
		}
	} else {
		slog.DebugContext(r.Context(), "request rejected",
			slog.String("path", r.URL.Path),
			slog.String("kind", string(appErr.Kind)),
			slog.Int("status", status))
	}

	utils.RespondJSON(rw, status, body)
}

package emotion

import (
	"context"
	"fmt"

	analysis "github.com/zhouzirui/emotion-detector/backend/internal/analysis/emotion"
)

// Scorer 调用外部服务为文本给出五种基础情绪强度。实现需可在并发请求间共享。
type Scorer interface {
	Score(ctx context.Context, text string) (analysis.BaseScores, error)
	Name() string
}

// FailureKind 区分上游失败的类别。
type FailureKind int

const (
	// KindFailure 网络错误、鉴权失败、响应格式异常等。
	KindFailure FailureKind = iota
	// KindRejected 上游认为内容无法处理 (HTTP 422)，通常是文本过短。
	KindRejected
)

// UpstreamError 是 Scorer 返回的显式错误类型。
type UpstreamError struct {
	Provider   string
	Kind       FailureKind
	StatusCode int
	Cause      error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: emotion analysis failed (status %d): %v", e.Provider, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("%s: emotion analysis failed: %v", e.Provider, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

package emotion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	analysis "github.com/zhouzirui/emotion-detector/backend/internal/analysis/emotion"
	"github.com/zhouzirui/emotion-detector/backend/internal/apperr"
	"github.com/zhouzirui/emotion-detector/backend/internal/metrics"
)

// 面向用户的提示文案。
const (
	MsgNoText             = "No text provided"
	MsgTooShort           = "Text is too short for emotion analysis"
	suggestionTooShortFmt = "Please provide at least %d words so that emotions can be detected reliably."
	MsgRejected           = "The text could not be analyzed for emotions"
	SuggestionRejected    = "Please provide a longer and more detailed text that expresses feelings or opinions."
)

// ErrScorerUnavailable 表示没有可用的情绪打分服务。
var ErrScorerUnavailable = errors.New("emotion analysis service is not configured")

// Config 控制情绪分析服务的行为。
type Config struct {
	// MinWords 为调用上游前要求的最少词数，0 表示不做本地检查。
	MinWords int
}

// Service 校验文本、调用上游打分并计算组合情绪。
type Service struct {
	scorer   Scorer
	minWords int
	metrics  *metrics.AnalysisMetrics
}

// NewService 创建情绪分析服务。scorer 为 nil 时所有分析请求都会失败。
func NewService(scorer Scorer, cfg Config, m *metrics.AnalysisMetrics) *Service {
	minWords := cfg.MinWords
	if minWords < 0 {
		minWords = 0
	}
	return &Service{
		scorer:   scorer,
		minWords: minWords,
		metrics:  m,
	}
}

// Ready 返回是否配置了打分服务。
func (s *Service) Ready() bool {
	return s != nil && s.scorer != nil
}

// Provider 返回打分服务名称。
func (s *Service) Provider() string {
	if !s.Ready() {
		return "none"
	}
	return s.scorer.Name()
}

// Analyze 对文本做情绪分析，返回基础情绪与组合情绪的合并结果。
// 返回的错误均为 *apperr.Error。
func (s *Service) Analyze(ctx context.Context, text string) (analysis.Scores, error) {
	if err := s.validate(text); err != nil {
		s.metrics.ObserveOutcome(metrics.OutcomeInvalid)
		return nil, err
	}

	if !s.Ready() {
		s.metrics.ObserveOutcome(metrics.OutcomeError)
		return nil, apperr.Internal(ErrScorerUnavailable)
	}

	start := time.Now()
	base, err := s.scorer.Score(ctx, text)
	elapsed := time.Since(start)
	if err != nil {
		var upstreamErr *UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.Kind == KindRejected {
			s.metrics.ObserveUpstream(s.scorer.Name(), "rejected", elapsed)
			s.metrics.ObserveOutcome(metrics.OutcomeUpstreamRejected)
			slog.InfoContext(ctx, "upstream rejected text",
				slog.String("provider", s.scorer.Name()),
				slog.Int("status", upstreamErr.StatusCode))
			return nil, apperr.UpstreamRejected(MsgRejected, SuggestionRejected, err)
		}

		s.metrics.ObserveUpstream(s.scorer.Name(), "error", elapsed)
		s.metrics.ObserveOutcome(metrics.OutcomeError)
		return nil, apperr.Internal(err)
	}

	s.metrics.ObserveUpstream(s.scorer.Name(), "ok", elapsed)
	s.metrics.ObserveOutcome(metrics.OutcomeSuccess)
	slog.DebugContext(ctx, "emotion analysis finished",
		slog.String("provider", s.scorer.Name()),
		slog.Duration("elapsed", elapsed))

	return analysis.Combine(base), nil
}

func (s *Service) validate(text string) error {
	words := strings.Fields(text)
	if len(words) == 0 {
		return apperr.Validation(MsgNoText, "")
	}
	if s.minWords > 0 && len(words) < s.minWords {
		return apperr.Validation(MsgTooShort, fmt.Sprintf(suggestionTooShortFmt, s.minWords))
	}
	return nil
}

package emotion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/IBM/go-sdk-core/v5/core"
	nlu "github.com/watson-developer-cloud/go-sdk/v3/naturallanguageunderstandingv1"

	analysis "github.com/zhouzirui/emotion-detector/backend/internal/analysis/emotion"
	"github.com/zhouzirui/emotion-detector/backend/internal/config"
)

const watsonProvider = "watson"

// WatsonScorer 通过 Watson Natural Language Understanding 的 emotion 特性打分。
type WatsonScorer struct {
	client  *nlu.NaturalLanguageUnderstandingV1
	timeout time.Duration
}

// NewWatsonScorer 使用 IAM API Key 创建 Watson 客户端。
func NewWatsonScorer(cfg config.WatsonConfig) (*WatsonScorer, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("watson credentials missing: WATSON_API_KEY and WATSON_URL are required")
	}
	authenticator, err := core.NewIamAuthenticatorBuilder().SetApiKey(cfg.APIKey).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create watson authenticator: %w", err)
	}
	return newWatsonScorer(authenticator, cfg)
}

func newWatsonScorer(authenticator core.Authenticator, cfg config.WatsonConfig) (*WatsonScorer, error) {
	client, err := nlu.NewNaturalLanguageUnderstandingV1(&nlu.NaturalLanguageUnderstandingV1Options{
		URL:           cfg.URL,
		Version:       core.StringPtr(cfg.Version),
		Authenticator: authenticator,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create watson nlu client: %w", err)
	}

	return &WatsonScorer{client: client, timeout: cfg.Timeout}, nil
}

// Name 返回服务名称。
func (s *WatsonScorer) Name() string {
	return watsonProvider
}

// Score 请求文档级 emotion 结果。上游返回 422 时给出 KindRejected。
func (s *WatsonScorer) Score(ctx context.Context, text string) (analysis.BaseScores, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	options := s.client.NewAnalyzeOptions(&nlu.Features{
		Emotion: &nlu.EmotionOptions{Document: core.BoolPtr(true)},
	})
	options.SetText(text)

	result, response, err := s.client.AnalyzeWithContext(ctx, options)
	if err != nil {
		upstreamErr := &UpstreamError{Provider: watsonProvider, Kind: KindFailure, Cause: err}
		if response != nil {
			upstreamErr.StatusCode = response.StatusCode
			if response.StatusCode == http.StatusUnprocessableEntity {
				upstreamErr.Kind = KindRejected
			}
		}
		return analysis.BaseScores{}, upstreamErr
	}

	base, err := documentScores(result)
	if err != nil {
		return analysis.BaseScores{}, &UpstreamError{Provider: watsonProvider, Kind: KindFailure, Cause: err}
	}
	return base, nil
}

var errMissingEmotion = errors.New("response has no document emotion scores")

func documentScores(result *nlu.AnalysisResults) (analysis.BaseScores, error) {
	if result == nil || result.Emotion == nil || result.Emotion.Document == nil || result.Emotion.Document.Emotion == nil {
		return analysis.BaseScores{}, errMissingEmotion
	}

	scores := result.Emotion.Document.Emotion
	fields := []struct {
		name string
		val  *float64
	}{
		{"joy", scores.Joy},
		{"sadness", scores.Sadness},
		{"fear", scores.Fear},
		{"disgust", scores.Disgust},
		{"anger", scores.Anger},
	}
	for _, f := range fields {
		if f.val == nil {
			return analysis.BaseScores{}, fmt.Errorf("response is missing %q score", f.name)
		}
	}

	return analysis.BaseScores{
		Joy:     *scores.Joy,
		Sadness: *scores.Sadness,
		Fear:    *scores.Fear,
		Disgust: *scores.Disgust,
		Anger:   *scores.Anger,
	}, nil
}

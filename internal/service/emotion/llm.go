package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	analysis "github.com/zhouzirui/emotion-detector/backend/internal/analysis/emotion"
)

const llmProvider = "ark"

// classifier 是已编译的提示词+模型链，便于测试时替换。
type classifier interface {
	Invoke(ctx context.Context, input map[string]any, opts ...compose.Option) (*schema.Message, error)
}

// LLMScorer 让大模型按 Watson 的五种基础情绪给文本打分。
type LLMScorer struct {
	classifier classifier
}

// NewLLMScorer 基于已有的聊天模型编译情绪打分链。
func NewLLMScorer(ctx context.Context, chatModel model.ChatModel) (*LLMScorer, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(scorerSystemPrompt),
		schema.UserMessage(scorerUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile emotion scorer chain: %w", err)
	}

	return &LLMScorer{classifier: runnable}, nil
}

// Name 返回服务名称。
func (s *LLMScorer) Name() string {
	return llmProvider
}

// Score 调用大模型并解析其返回的 JSON 分数，结果被限制在 [0,1]。
func (s *LLMScorer) Score(ctx context.Context, text string) (analysis.BaseScores, error) {
	msg, err := s.classifier.Invoke(ctx, map[string]any{"text": strings.TrimSpace(text)})
	if err != nil {
		return analysis.BaseScores{}, &UpstreamError{Provider: llmProvider, Kind: KindFailure, Cause: err}
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return analysis.BaseScores{}, &UpstreamError{Provider: llmProvider, Kind: KindFailure, Cause: fmt.Errorf("empty model response")}
	}

	payload, err := parseScorerOutput(msg.Content)
	if err != nil {
		return analysis.BaseScores{}, &UpstreamError{Provider: llmProvider, Kind: KindFailure, Cause: err}
	}
	if payload.Unanalyzable {
		return analysis.BaseScores{}, &UpstreamError{Provider: llmProvider, Kind: KindRejected, Cause: fmt.Errorf("model marked text as unanalyzable")}
	}

	return payload.BaseScores.Clamp(), nil
}

type scorerPayload struct {
	analysis.BaseScores
	Unanalyzable bool `json:"unanalyzable"`
}

// parseScorerOutput 解析大模型返回的 JSON，容忍前后多余文本。
func parseScorerOutput(content string) (*scorerPayload, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json object")
	}

	payload := &scorerPayload{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), payload); err != nil {
		return nil, fmt.Errorf("invalid json object: %w", err)
	}
	return payload, nil
}

const scorerSystemPrompt = "你是一名文本情绪分析器。请阅读用户给出的文本，评估其中 joy、sadness、fear、disgust、anger 五种情绪的强度。\n输出要求：只返回一个 JSON 对象，包含 joy、sadness、fear、disgust、anger 五个字段，取值为 0~1 之间的小数；若文本过短或没有可判断的情绪内容，额外给出 unanalyzable=true。不得输出多余文本。"

const scorerUserPrompt = "待分析文本：\n{text}"

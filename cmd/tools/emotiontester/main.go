package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/emotion-detector/backend/internal/apperr"
	"github.com/zhouzirui/emotion-detector/backend/internal/config"
	emotionservice "github.com/zhouzirui/emotion-detector/backend/internal/service/emotion"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] 无法加载 .env，改用系统环境变量: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	text := flag.String("text", "", "待分析文本，留空则从标准输入读取")
	provider := flag.String("provider", cfg.Analysis.Provider, "打分服务: watson 或 ark")
	minWords := flag.Int("min-words", cfg.Analysis.MinWords, "本地最少词数检查，0 表示关闭")
	timeout := flag.Duration("timeout", 30*time.Second, "请求超时时间")

	flag.Parse()

	input := *text
	if strings.TrimSpace(input) == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("读取标准输入失败: %v", err)
		}
		input = string(raw)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	scorer, err := buildScorer(ctx, cfg, *provider)
	if err != nil {
		log.Fatalf("初始化打分服务失败: %v", err)
	}

	svc := emotionservice.NewService(scorer, emotionservice.Config{MinWords: *minWords}, nil)

	log.Printf("开始情绪分析: provider=%s words=%d", scorer.Name(), len(strings.Fields(input)))

	scores, err := svc.Analyze(ctx, input)
	if err != nil {
		appErr := apperr.From(err)
		if appErr.Suggestion != "" {
			log.Fatalf("分析失败 (status=%d): %s (%s)", appErr.HTTPStatus(), appErr.Message, appErr.Suggestion)
		}
		log.Fatalf("分析失败 (status=%d): %s", appErr.HTTPStatus(), appErr.Message)
	}

	out, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		log.Fatalf("序列化结果失败: %v", err)
	}
	fmt.Println(string(out))
}

func buildScorer(ctx context.Context, cfg *config.Config, provider string) (emotionservice.Scorer, error) {
	switch strings.ToLower(provider) {
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
	case config.ProviderWatson:
		scorer, err := emotionservice.NewWatsonScorer(cfg.Watson)
		if err != nil {
			return nil, err
		}
		return scorer, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

package llm

import (
	"context"
	"time"

	"LuckyChat/config"
	"LuckyChat/pkg/log"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// Client OpenAI 兼容接口的薄封装，base_url 可指向任意兼容服务
type Client struct {
	api   openai.Client
	model string
}

func NewClient(c *config.Config) *Client {
	api := openai.NewClient(
		option.WithAPIKey(c.LLM.APIKey),
		option.WithBaseURL(c.LLM.BaseURL),
	)
	return &Client{api: api, model: c.LLM.Model}
}

// Complete 单轮补全，返回首个 choice 的文本
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	}
	startTime := time.Now()
	completion, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		log.L.Error("llm completion failed", zap.Error(err))
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}
	content := completion.Choices[0].Message.Content
	log.L.Info("llm completion",
		zap.Int("len", len(content)),
		zap.Duration("cost", time.Since(startTime)))
	return content, nil
}

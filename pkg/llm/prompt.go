package llm

import (
	"clipchain/config"
	"clipchain/pkg/log"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

const systemPrompt = "You write prompts for a short-form AI video generator. " +
	"Given a social profile bio, describe one vivid 5 second scene that captures the person. " +
	"Output a single paragraph under 60 words, no hashtags, no quotes, no names of real brands."

// 最长 bio 长度，超出部分截断
const maxBioRunes = 600

type Prompter struct {
	client  openai.Client
	model   openai.ChatModel
	enabled bool
}

func NewPrompter(conf *config.LLM) *Prompter {
	if conf == nil || conf.ApiKey == "" {
		return &Prompter{}
	}
	opts := []option.RequestOption{option.WithAPIKey(conf.ApiKey)}
	if conf.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(conf.BaseURL))
	}
	model := conf.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Prompter{
		client:  openai.NewClient(opts...),
		model:   openai.ChatModel(model),
		enabled: true,
	}
}

// BioPrompt 把用户 bio 改写成视频提示词，模型不可用时退回固定模板
func (p *Prompter) BioPrompt(ctx context.Context, username, bio string) string {
	bio = truncate(strings.TrimSpace(bio), maxBioRunes)
	if !p.enabled || bio == "" {
		return FallbackBioPrompt(username, bio)
	}

	startTime := time.Now()
	params := openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{OfString: openai.String(systemPrompt)},
			}},
			{OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{OfString: openai.String(bio)},
			}},
		},
	}
	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil || len(completion.Choices) == 0 {
		log.L.Warn("bio prompt fallback", zap.String("username", username), zap.Error(err))
		return FallbackBioPrompt(username, bio)
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	log.L.Info("bio prompt", zap.String("username", username), zap.Duration("gen time", time.Since(startTime)))
	if content == "" {
		return FallbackBioPrompt(username, bio)
	}
	return content
}

func FallbackBioPrompt(username, bio string) string {
	if bio == "" {
		return fmt.Sprintf("A cinematic montage introducing @%s, warm lighting, dynamic camera movement", username)
	}
	return fmt.Sprintf("A cinematic short video that brings this profile to life: %q. Warm lighting, dynamic camera movement", bio)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// internal/llm/openai.go
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
)

// OpenAIClient talks to any OpenAI-compatible chat-completion vendor via
// a configurable base URL. Used as the alternate backend when no Gemini
// credential is present.
type OpenAIClient struct {
	client          openai.Client
	model           string
	temperature     float64
	maxOutputTokens int64
}

func NewOpenAIClient(opts Options) (*OpenAIClient, error) {
	if opts.APIKey == "" {
		return nil, errors.New("openai API key is not set")
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	return &OpenAIClient{
		client:          openai.NewClient(reqOpts...),
		model:           opts.Model,
		temperature:     opts.Temperature,
		maxOutputTokens: int64(opts.MaxOutputTokens),
	}, nil
}

func (c *OpenAIClient) params(p Prompt) openai.ChatCompletionNewParams {
	var userMsg openai.ChatCompletionMessageParamUnion
	if p.ImageDataURI != "" {
		userMsg = openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(p.Text),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: p.ImageDataURI,
			}),
		})
	} else {
		userMsg = openai.UserMessage(p.Text)
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{userMsg},
		Temperature: openai.Float(c.temperature),
	}
	if c.maxOutputTokens > 0 {
		params.MaxTokens = openai.Int(c.maxOutputTokens)
	}
	if p.JSONOnly {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}
	return params
}

func (c *OpenAIClient) Generate(ctx context.Context, p Prompt) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, c.params(p))
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return completion.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) GenerateStream(ctx context.Context, p Prompt, fn func(chunk string) error) error {
	stream := c.client.Chat.Completions.NewStreaming(ctx, c.params(p))
	defer stream.Close()

	emitted := false
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		emitted = true
		if err := fn(delta); err != nil {
			return err
		}
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("openai stream failed: %w", err)
	}
	if !emitted {
		return ErrEmptyResponse
	}
	return nil
}

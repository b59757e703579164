// internal/llm/gemini.go
package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiClient is the hosted-vendor backend, selected when a Gemini
// credential is configured.
type GeminiClient struct {
	client          *genai.Client
	model           string
	temperature     float32
	maxOutputTokens int32
}

func NewGeminiClient(ctx context.Context, opts Options) (*GeminiClient, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini API key is not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClient{
		client:          client,
		model:           opts.Model,
		temperature:     float32(opts.Temperature),
		maxOutputTokens: int32(opts.MaxOutputTokens),
	}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func (g *GeminiClient) generativeModel(jsonOnly bool) *genai.GenerativeModel {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(g.temperature)
	if g.maxOutputTokens > 0 {
		model.SetMaxOutputTokens(g.maxOutputTokens)
	}
	if jsonOnly {
		model.ResponseMIMEType = "application/json"
	}
	return model
}

func (g *GeminiClient) parts(p Prompt) ([]genai.Part, error) {
	parts := []genai.Part{genai.Text(p.Text)}
	if p.ImageDataURI != "" {
		format, data, err := decodeDataURI(p.ImageDataURI)
		if err != nil {
			return nil, err
		}
		parts = append(parts, genai.ImageData(format, data))
	}
	return parts, nil
}

func (g *GeminiClient) Generate(ctx context.Context, p Prompt) (string, error) {
	parts, err := g.parts(p)
	if err != nil {
		return "", err
	}

	resp, err := g.generativeModel(p.JSONOnly).GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := candidateText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (g *GeminiClient) GenerateStream(ctx context.Context, p Prompt, fn func(chunk string) error) error {
	parts, err := g.parts(p)
	if err != nil {
		return err
	}

	iter := g.generativeModel(p.JSONOnly).GenerateContentStream(ctx, parts...)
	emitted := false
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("gemini stream failed: %w", err)
		}
		if chunk := candidateText(resp); chunk != "" {
			emitted = true
			if err := fn(chunk); err != nil {
				return err
			}
		}
	}
	if !emitted {
		return ErrEmptyResponse
	}
	return nil
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

// decodeDataURI splits data:<mime>;base64,<data> into the short image
// format Gemini expects ("png", "jpeg") and the decoded bytes.
func decodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("invalid image data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("invalid image data URI")
	}
	mime := strings.TrimSuffix(meta, ";base64")
	format := strings.TrimPrefix(mime, "image/")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid image payload: %w", err)
	}
	return format, data, nil
}

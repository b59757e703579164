// internal/llm/client.go
package llm

import (
	"context"
	"errors"
)

// Failure classes surfaced by the gateway and parser. Handlers map these
// to response codes; none of them are retried.
var (
	ErrEmptyResponse     = errors.New("empty AI response")
	ErrMalformedResponse = errors.New("malformed AI response")
)

// Prompt is one gateway invocation: instruction text, an optional inline
// image, and whether the provider should be asked for JSON-constrained
// output.
type Prompt struct {
	Text string

	// ImageDataURI carries an optional image as data:<mime>;base64,<data>.
	ImageDataURI string

	JSONOnly bool
}

// Client is a chat-completion backend. Exactly one backend is selected at
// process start based on which credential is configured.
type Client interface {
	// Generate sends the prompt and returns the raw response text.
	Generate(ctx context.Context, p Prompt) (string, error)

	// GenerateStream sends the prompt and forwards response text to fn
	// chunk by chunk as the provider produces it. A non-nil error from fn
	// stops the stream.
	GenerateStream(ctx context.Context, p Prompt, fn func(chunk string) error) error
}

// Options configures a backend client.
type Options struct {
	APIKey          string
	BaseURL         string
	Model           string
	Temperature     float64
	MaxOutputTokens int
}

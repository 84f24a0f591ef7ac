package inference

import (
	"cmp"
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

type GeminiInferencer struct {
	client *genai.Client
	model  string
}

// GeminiOption adjusts the client config before the client is built.
type GeminiOption func(*genai.ClientConfig)

// WithGeminiBaseURL sends requests to baseURL instead of the public Gemini endpoint.
func WithGeminiBaseURL(baseURL string) GeminiOption {
	return func(c *genai.ClientConfig) {
		c.HTTPOptions.BaseURL = baseURL
	}
}

func newGeminiClient(ctx context.Context, apiKey string, opts []GeminiOption) (*genai.Client, error) {
	config := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	for _, opt := range opts {
		opt(config)
	}
	return genai.NewClient(ctx, config)
}

// NewGeminiInferencer creates a new inferencer instance using the Gemini API.
func NewGeminiInferencer(ctx context.Context, apiKey string, model string, opts ...GeminiOption) (*GeminiInferencer, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := newGeminiClient(ctx, apiKey, opts)
	if err != nil {
		return nil, err
	}
	return &GeminiInferencer{
		client: client,
		model:  model,
	}, nil
}

// Infer sends text to Gemini generateContent and returns the output.
func (o *GeminiInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	if params == nil {
		params = new(openai.ChatCompletionNewParams)
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		MaxOutputTokens:  int32(cmp.Or(params.MaxCompletionTokens.Value, 4096)),
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if params.Temperature.Valid() {
		t := float32(params.Temperature.Value)
		config.Temperature = &t
	}

	result, err := o.client.Models.GenerateContent(
		ctx,
		cmp.Or(params.Model, o.model),
		genai.Text(user),
		config,
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	// An empty reply is not an error; the caller decides what to do with it.
	return result.Text(), nil
}

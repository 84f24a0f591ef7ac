package inference

import (
	"cmp"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/genai"
)

// OpenAIIllustrator implements Illustrator with the OpenAI Images API.
type OpenAIIllustrator struct {
	client *openai.Client
	model  string
}

func NewOpenAIIllustrator(apiKey string, model string, opts ...option.RequestOption) *OpenAIIllustrator {
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAIIllustrator{
		client: &client,
		model:  cmp.Or(model, "gpt-image-1"),
	}
}

// Illustrate returns the URL of the first generated image. Models that only return
// base64 payloads are answered with a data URL.
func (o *OpenAIIllustrator) Illustrate(ctx context.Context, prompt, size string) (string, error) {
	resp, err := o.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:  openai.ImageModel(o.model),
		Prompt: prompt,
		Size:   openai.ImageGenerateParamsSize(size),
		N:      openai.Int(1),
	})
	if err != nil {
		return "", fmt.Errorf("openai image error: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", ErrNoImage
	}

	img := resp.Data[0]
	if url := strings.TrimSpace(img.URL); url != "" {
		return url, nil
	}
	if img.B64JSON != "" {
		return "data:image/png;base64," + img.B64JSON, nil
	}
	return "", ErrNoImage
}

// GeminiIllustrator implements Illustrator with Imagen through the Gemini API.
type GeminiIllustrator struct {
	client *genai.Client
	model  string
}

func NewGeminiIllustrator(ctx context.Context, apiKey string, model string, opts ...GeminiOption) (*GeminiIllustrator, error) {
	client, err := newGeminiClient(ctx, apiKey, opts)
	if err != nil {
		return nil, err
	}
	return &GeminiIllustrator{
		client: client,
		model:  cmp.Or(model, "imagen-3.0-generate-002"),
	}, nil
}

// Illustrate returns the generated image inline as a data URL. Imagen has no pixel size
// parameter so size only selects the aspect ratio.
func (o *GeminiIllustrator) Illustrate(ctx context.Context, prompt, size string) (string, error) {
	resp, err := o.client.Models.GenerateImages(ctx, o.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspectRatio(size),
	})
	if err != nil {
		return "", fmt.Errorf("gemini image error: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return "", ErrNoImage
	}

	img := resp.GeneratedImages[0].Image
	if len(img.ImageBytes) == 0 {
		if img.GCSURI != "" {
			return img.GCSURI, nil
		}
		return "", ErrNoImage
	}
	mime := cmp.Or(img.MIMEType, "image/png")
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.ImageBytes), nil
}

func aspectRatio(size string) string {
	switch size {
	case "1536x1024", "1792x1024":
		return "16:9"
	case "1024x1536", "1024x1792":
		return "9:16"
	default:
		return "1:1"
	}
}

package inference

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v3"
)

var (
	ErrNoChoices    = errors.New("no choices returned")
	ErrNoCandidates = errors.New("no candidates returned")
	ErrNoImage      = errors.New("no image returned")
)

// Inferencer defines an interface for running text model inference.
// An empty system prompt sends user as the only message.
type Inferencer interface {
	Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error)
}

// Illustrator generates a single image for a prompt and returns a URL the frontend can render.
type Illustrator interface {
	Illustrate(ctx context.Context, prompt, size string) (string, error)
}

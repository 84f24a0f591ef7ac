package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"storybook/pkg/inference"
	"storybook/pkg/utils"
)

const (
	// PlaceholderURL is returned whenever the image collaborator cannot produce an image.
	PlaceholderURL = "https://via.placeholder.com/1024x768?text=Image+Unavailable"

	imageSize = "1024x1024"
)

type ImageRequest struct {
	Prompt string `json:"prompt"`
}

type ImageResponse struct {
	ImageURL string `json:"image_url"`
}

// POST /generate_image
func (s *Server) handlePostImage(c echo.Context) error {
	var req ImageRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("invalid JSON in /generate_image", "error", err)
		return c.JSON(http.StatusUnprocessableEntity, utils.Detail("invalid json"))
	}

	url, err := s.illustrate(c.Request().Context(), buildImagePrompt(req.Prompt))
	if err != nil {
		log.Warn("image generation failed, using placeholder",
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"kind", kindOf(err),
			"error", err,
		)
		url = PlaceholderURL
	}

	return c.JSON(http.StatusOK, ImageResponse{ImageURL: url})
}

// errPanic marks a collaborator call that panicked.
type errPanic struct{ v any }

func (e errPanic) Error() string { return fmt.Sprintf("image collaborator panicked: %v", e.v) }

// illustrate only ever yields a usable URL or an error; panics are converted to errors.
func (s *Server) illustrate(ctx context.Context, prompt string) (url string, err error) {
	if s.Illustrator == nil {
		return "", inference.ErrNoImage
	}
	defer func() {
		if r := recover(); r != nil {
			url, err = "", errPanic{r}
		}
	}()

	url, err = s.Illustrator.Illustrate(ctx, prompt, imageSize)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(url) == "" {
		return "", inference.ErrNoImage
	}
	return url, nil
}

func kindOf(err error) string {
	if _, ok := err.(errPanic); ok {
		return "panic"
	}
	return inference.Classify(err)
}

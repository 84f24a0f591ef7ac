package server

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/openai/openai-go/v3"

	"storybook/pkg/inference"
	"storybook/pkg/scenes"
	"storybook/pkg/schema"
	"storybook/pkg/utils"
)

const (
	defaultGenre    = "Fantasy"
	defaultTone     = "Lighthearted"
	defaultAudience = "Teens"
)

// StoryRequest fields are pointers so an explicit "" stays distinct from an absent key.
type StoryRequest struct {
	Idea     *string `json:"idea"`
	Genre    *string `json:"genre,omitempty"`
	Tone     *string `json:"tone,omitempty"`
	Audience *string `json:"audience,omitempty"`
}

// storyParams are the resolved prompt values.
type storyParams struct {
	Idea, Genre, Tone, Audience string
}

type StoryResponse struct {
	Scenes []string `json:"scenes"`
}

func (r StoryRequest) resolve() storyParams {
	return storyParams{
		Idea:     *r.Idea,
		Genre:    valueOr(r.Genre, defaultGenre),
		Tone:     valueOr(r.Tone, defaultTone),
		Audience: valueOr(r.Audience, defaultAudience),
	}
}

func valueOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// POST /generate_story
func (s *Server) handlePostStory(c echo.Context) error {
	var req StoryRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("invalid JSON in /generate_story", "error", err)
		return c.JSON(http.StatusUnprocessableEntity, utils.Detail("invalid json"))
	}
	if req.Idea == nil {
		return c.JSON(http.StatusUnprocessableEntity, utils.Detail("idea is required"))
	}
	story := req.resolve()

	prompt := buildStoryPrompt(story)
	if log.GetLevel() <= log.DebugLevel {
		if n, err := utils.NumTokens(s.StoryModel, prompt); err == nil {
			log.Debug("story prompt", "tokens", n)
		}
	}

	params := &openai.ChatCompletionNewParams{
		ResponseFormat: schema.StructuredOutputsResponseFormat(),
	}
	out, err := s.Inferencer.Infer(c.Request().Context(), params, "", prompt)
	if err != nil {
		log.Error("story inference failed", "error", err, "kind", inference.Classify(err))
		return c.JSON(http.StatusInternalServerError, utils.Detail("Story generation failed: "+err.Error()))
	}

	res := scenes.Parse(strings.TrimSpace(out))
	log.Info("story generated",
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"idea", utils.LimitStr(story.Idea, 50),
		"parsed", res.Kind,
		"scenes", len(res.Scenes),
	)

	return c.JSON(http.StatusOK, StoryResponse{Scenes: res.Scenes})
}

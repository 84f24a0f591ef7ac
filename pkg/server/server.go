package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/segmentio/ksuid"

	"storybook/pkg/inference"
	"storybook/pkg/utils"
)

type Server struct {
	Echo        *echo.Echo
	Inferencer  inference.Inferencer
	Illustrator inference.Illustrator

	// StoryModel is only used to estimate prompt tokens in debug logs.
	StoryModel string
}

func NewServer(inf inference.Inferencer, ill inference.Illustrator) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return ksuid.New().String() },
	}))
	e.Use(middleware.Logger())
	// Any origin may call the API. Restrict AllowOrigins before exposing this publicly.
	e.Use(middleware.CORS())

	s := &Server{
		Echo:        e,
		Inferencer:  inf,
		Illustrator: ill,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/", s.handleGetRoot)

	s.Echo.POST("/generate_story", s.handlePostStory)
	s.Echo.POST("/generate_image", s.handlePostImage)
}

func (s *Server) Start(addr string) error {
	utils.Logf("Server listening at %s", addr)
	return s.Echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	utils.Logf("Shutting down server...")
	return s.Echo.Shutdown(ctx)
}

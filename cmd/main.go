package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	charm "github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/gommon/log"
	"github.com/openai/openai-go/v3/option"

	"storybook/pkg/config"
	"storybook/pkg/inference"
	"storybook/pkg/server"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if level, err := charm.ParseLevel(cfg.LogLevel); err == nil {
		charm.SetLevel(level)
	} else {
		charm.Warn("unknown LOG_LEVEL, keeping info", "value", cfg.LogLevel)
	}

	var openAIOpts []option.RequestOption
	if cfg.OpenAIBaseURL != "" {
		openAIOpts = append(openAIOpts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}

	var geminiOpts []inference.GeminiOption
	if cfg.GeminiBaseURL != "" {
		geminiOpts = append(geminiOpts, inference.WithGeminiBaseURL(cfg.GeminiBaseURL))
	}

	var inf inference.Inferencer
	storyModel := cfg.GeminiModel
	switch cfg.StoryProvider {
	case config.ProviderOpenAI:
		inf = inference.NewOpenAIInferencer(cfg.OpenAIAPIKey, cfg.OpenAIModel, openAIOpts...)
		storyModel = cfg.OpenAIModel
	default:
		gemini, err := inference.NewGeminiInferencer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, geminiOpts...)
		if err != nil {
			log.Fatalf("failed to create gemini client: %v", err)
		}
		inf = gemini
	}

	var ill inference.Illustrator
	switch cfg.ImageProvider {
	case config.ProviderGemini:
		imagen, err := inference.NewGeminiIllustrator(ctx, cfg.GeminiAPIKey, cfg.GeminiImageModel, geminiOpts...)
		if err != nil {
			log.Fatalf("failed to create gemini image client: %v", err)
		}
		ill = imagen
	default:
		ill = inference.NewOpenAIIllustrator(cfg.OpenAIAPIKey, cfg.OpenAIImageModel, openAIOpts...)
	}

	srv := server.NewServer(inf, ill)
	srv.StoryModel = storyModel
	if charm.GetLevel() <= charm.DebugLevel {
		srv.Echo.Logger.SetLevel(log.DEBUG)
	}

	charm.Info("providers ready", "story", cfg.StoryProvider, "story_model", storyModel, "image", cfg.ImageProvider)

	finishedShutDown := make(chan struct{})
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Fatal(err)
		}
		done()
		close(finishedShutDown)
	}()

	if err := srv.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(err)
		os.Exit(1)
	}
	<-finishedShutDown
}

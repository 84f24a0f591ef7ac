package config

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMissingSecret is returned by Load when a required credential is not set.
var ErrMissingSecret = errors.New("missing required secret")

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config is read once at startup and never mutated afterwards.
type Config struct {
	GeminiAPIKey string
	OpenAIAPIKey string

	StoryProvider string
	GeminiModel   string
	OpenAIModel   string

	ImageProvider    string
	OpenAIImageModel string
	GeminiImageModel string

	// OpenAIBaseURL points the OpenAI clients at a compatible endpoint when set.
	OpenAIBaseURL string
	// GeminiBaseURL does the same for the Gemini clients.
	GeminiBaseURL string

	Port     string
	LogLevel string
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		OpenAIAPIKey: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),

		StoryProvider: strings.ToLower(cmp.Or(os.Getenv("STORY_PROVIDER"), ProviderGemini)),
		GeminiModel:   cmp.Or(os.Getenv("GEMINI_MODEL"), "gemini-1.5-flash"),
		OpenAIModel:   cmp.Or(os.Getenv("OPENAI_MODEL"), "gpt-4o-mini"),

		ImageProvider:    strings.ToLower(cmp.Or(os.Getenv("IMAGE_PROVIDER"), ProviderOpenAI)),
		OpenAIImageModel: cmp.Or(os.Getenv("OPENAI_IMAGE_MODEL"), "gpt-image-1"),
		GeminiImageModel: cmp.Or(os.Getenv("GEMINI_IMAGE_MODEL"), "imagen-3.0-generate-002"),

		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),

		Port:     cmp.Or(os.Getenv("PORT"), "8080"),
		LogLevel: cmp.Or(os.Getenv("LOG_LEVEL"), "info"),
	}

	var missing []string
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if cfg.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: set %s in the environment or .env", ErrMissingSecret, strings.Join(missing, " and "))
	}

	switch cfg.StoryProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return nil, fmt.Errorf("unknown STORY_PROVIDER %q", cfg.StoryProvider)
	}
	switch cfg.ImageProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return nil, fmt.Errorf("unknown IMAGE_PROVIDER %q", cfg.ImageProvider)
	}

	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

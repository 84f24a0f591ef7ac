package inference

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// Error kinds reported by Classify.
const (
	KindCanceled    = "canceled"
	KindTimeout     = "timeout"
	KindAuth        = "auth"
	KindRateLimited = "rate_limited"
	KindProvider    = "provider"
	KindEmpty       = "empty"
	KindUnknown     = "unknown"
)

// Classify buckets a collaborator error for logging. It never changes what callers return.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrNoImage), errors.Is(err, ErrNoChoices), errors.Is(err, ErrNoCandidates):
		return KindEmpty
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return kindForStatus(apiErr.StatusCode)
	}
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return kindForStatus(genaiErr.Code)
	}
	return KindUnknown
}

func kindForStatus(code int) string {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusTooManyRequests:
		return KindRateLimited
	default:
		return KindProvider
	}
}

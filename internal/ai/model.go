// Package ai drafts site content and images with a generative model.
package ai

import (
	"context"
	"errors"

	"sitecms-backend-go/internal/services"
)

var (
	ErrNotConfigured   = errors.New("ai: model not configured")
	ErrRateLimited     = errors.New("ai: rate limited")
	ErrInvalidResponse = errors.New("ai: invalid model response")
)

// Part is one piece of a multimodal model response.
type Part struct {
	Text     string
	MIMEType string
	Data     []byte
}

// Model is the generative backend. GenerateText is asked for JSON output;
// GenerateImage requests text and image modalities.
type Model interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) ([]Part, error)
}

// Unconfigured is used when no API key is set. Every call fails with
// ErrNotConfigured.
type Unconfigured struct{}

func (Unconfigured) GenerateText(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

func (Unconfigured) GenerateImage(context.Context, string) ([]Part, error) {
	return nil, ErrNotConfigured
}

// serviceError turns a model failure into the error answered to the client.
func serviceError(err error) error {
	switch {
	case errors.Is(err, ErrRateLimited):
		return services.ErrRateLimited("AI rate limit reached. Please wait a minute and try again.", err)
	case errors.Is(err, ErrNotConfigured):
		return services.ErrUpstream("AI is not configured", err)
	case errors.Is(err, ErrInvalidResponse):
		return services.ErrUpstream("AI returned an invalid response. Please try again.", err)
	default:
		return services.ErrUpstream("AI generation failed", err)
	}
}

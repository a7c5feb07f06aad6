package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// GeminiModel calls the Gemini API through the genai SDK.
type GeminiModel struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

func NewGeminiModel(ctx context.Context, apiKey, textModel, imageModel string) (*GeminiModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &GeminiModel{client: client, textModel: textModel, imageModel: imageModel}, nil
}

func (m *GeminiModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.textModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", classify(err)
	}
	var b strings.Builder
	for _, part := range responseParts(resp) {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

func (m *GeminiModel) GenerateImage(ctx context.Context, prompt string) ([]Part, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.imageModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return nil, classify(err)
	}
	parts := []Part{}
	for _, part := range responseParts(resp) {
		p := Part{Text: part.Text}
		if part.InlineData != nil {
			p.MIMEType = part.InlineData.MIMEType
			p.Data = part.InlineData.Data
		}
		parts = append(parts, p)
	}
	return parts, nil
}

func responseParts(resp *genai.GenerateContentResponse) []*genai.Part {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return nil
	}
	parts := make([]*genai.Part, 0, len(candidate.Content.Parts))
	for _, part := range candidate.Content.Parts {
		if part != nil {
			parts = append(parts, part)
		}
	}
	return parts
}

// classify marks provider throttling with ErrRateLimited.
func classify(err error) error {
	code, status := 0, ""
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code, status = apiErr.Code, apiErr.Status
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		code, status = apiErrPtr.Code, apiErrPtr.Status
	}
	if code == http.StatusTooManyRequests || status == "RESOURCE_EXHAUSTED" ||
		strings.Contains(err.Error(), "RESOURCE_EXHAUSTED") {
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	return err
}

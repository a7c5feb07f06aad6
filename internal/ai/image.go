package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"sitecms-backend-go/internal/services"
)

type ImageRequest struct {
	Title      string `json:"title"`
	EntityType string `json:"entityType"`
	Folder     string `json:"folder"`
}

// ImageResult is always answered with HTTP 200. A failed generation carries
// an empty URL and the reason in Error.
type ImageResult struct {
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

type ImageGenerator struct {
	model    Model
	uploader services.MediaUploader
}

func NewImageGenerator(model Model, uploader services.MediaUploader) *ImageGenerator {
	return &ImageGenerator{model: model, uploader: uploader}
}

// Generate only returns an error for invalid input. Model and upload
// failures are reported inside the result so that authoring can continue
// without an image.
func (g *ImageGenerator) Generate(ctx context.Context, req ImageRequest) (ImageResult, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return ImageResult{}, services.ErrBadRequest("Title is required")
	}
	folder, err := services.ResolveFolder(req.Folder, strings.TrimSpace(req.EntityType))
	if err != nil {
		return ImageResult{}, err
	}
	log := logrus.WithFields(logrus.Fields{"folder": folder, "title": req.Title})

	parts, err := g.model.GenerateImage(ctx, imagePrompt(req))
	if err != nil {
		log.WithError(err).Warn("ai: image generation failed")
		return ImageResult{Error: imageFailure(err)}, nil
	}
	part, ok := firstImage(parts)
	if !ok {
		log.Warn("ai: model returned no image")
		return ImageResult{Error: "The model did not return an image. Try a different title."}, nil
	}
	data, mimeType := services.PrepareImage(part.Data, part.MIMEType)
	name := services.Slugify(req.Title)
	if len(name) > 60 {
		name = strings.Trim(name[:60], "-")
	}
	name = strings.TrimPrefix(name+"-"+services.ShortID(), "-")
	url, err := g.uploader.Upload(ctx, folder, name, data, mimeType)
	if err != nil {
		log.WithError(err).Warn("ai: image upload failed")
		return ImageResult{Error: "Image upload failed"}, nil
	}
	return ImageResult{URL: url}, nil
}

func firstImage(parts []Part) (Part, bool) {
	for _, part := range parts {
		if len(part.Data) > 0 && strings.HasPrefix(strings.ToLower(part.MIMEType), "image/") {
			return part, true
		}
	}
	return Part{}, false
}

func imageFailure(err error) string {
	switch {
	case errors.Is(err, ErrRateLimited):
		return "AI rate limit reached. Please wait a minute and try again."
	case errors.Is(err, ErrNotConfigured):
		return "AI is not configured"
	default:
		return "Image generation failed"
	}
}

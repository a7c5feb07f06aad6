package ai

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecms-backend-go/internal/services"
)

type memoryUploader struct {
	folder string
	name   string
	mime   string
	err    error
}

func (u *memoryUploader) Upload(_ context.Context, folder, name string, _ []byte, mimeType string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.folder, u.name, u.mime = folder, name, mimeType
	return "https://cdn.example/" + folder + "/" + name, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 0x80, 0xff
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageGenerateUploads(t *testing.T) {
	model := &scriptedModel{parts: []Part{
		{Text: "Here is your image"},
		{MIMEType: "image/png", Data: pngBytes(t)},
	}}
	uploader := &memoryUploader{}
	result, err := NewImageGenerator(model, uploader).Generate(context.Background(), ImageRequest{
		Title:      "Modern Kitchen",
		EntityType: EntityService,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Error)
	assert.Equal(t, services.FolderServices, uploader.folder)
	assert.True(t, strings.HasPrefix(uploader.name, "modern-kitchen-"))
	assert.Equal(t, "image/jpeg", uploader.mime)
	assert.Equal(t, "https://cdn.example/services/"+uploader.name, result.URL)
}

func TestImageGenerateSoftFailures(t *testing.T) {
	cases := []struct {
		name     string
		model    *scriptedModel
		uploader *memoryUploader
		want     string
	}{
		{"no image", &scriptedModel{parts: []Part{{Text: "I can only describe it"}}}, &memoryUploader{}, "The model did not return an image. Try a different title."},
		{"rate limited", &scriptedModel{err: ErrRateLimited}, &memoryUploader{}, "AI rate limit reached. Please wait a minute and try again."},
		{"model error", &scriptedModel{err: errors.New("boom")}, &memoryUploader{}, "Image generation failed"},
		{"upload error", &scriptedModel{parts: []Part{{MIMEType: "image/png", Data: []byte("raw")}}}, &memoryUploader{err: errors.New("offline")}, "Image upload failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := NewImageGenerator(tc.model, tc.uploader).Generate(context.Background(), ImageRequest{Title: "Deck"})
			require.NoError(t, err)
			assert.Equal(t, ImageResult{Error: tc.want}, result)
		})
	}
}

func TestImageGenerateUnconfigured(t *testing.T) {
	result, err := NewImageGenerator(Unconfigured{}, &memoryUploader{}).Generate(context.Background(), ImageRequest{Title: "Deck"})
	require.NoError(t, err)
	assert.Equal(t, "", result.URL)
	assert.Equal(t, "AI is not configured", result.Error)
}

func TestImageGenerateValidation(t *testing.T) {
	gen := NewImageGenerator(&scriptedModel{}, &memoryUploader{})
	_, err := gen.Generate(context.Background(), ImageRequest{})
	assert.Equal(t, http.StatusBadRequest, services.StatusOf(err))
	_, err = gen.Generate(context.Background(), ImageRequest{Title: "x", Folder: "secrets"})
	assert.Equal(t, http.StatusBadRequest, services.StatusOf(err))
}

func TestImageNameIsTruncated(t *testing.T) {
	uploader := &memoryUploader{}
	model := &scriptedModel{parts: []Part{{MIMEType: "image/png", Data: pngBytes(t)}}}
	_, err := NewImageGenerator(model, uploader).Generate(context.Background(), ImageRequest{
		Title: strings.Repeat("very long title ", 10),
	})
	require.NoError(t, err)
	prefix := uploader.name[:strings.LastIndex(uploader.name, "-")]
	assert.LessOrEqual(t, len(prefix), 60)
	assert.False(t, strings.HasSuffix(prefix, "-"))
}

package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"
)

func TestResolveFolder(t *testing.T) {
	cases := []struct {
		folder, entity, want string
	}{
		{"", EntityBlog, FolderBlog},
		{"", EntityService, FolderServices},
		{"", EntityProject, FolderProjects},
		{"", "", FolderGallery},
		{" Projects ", EntityBlog, FolderProjects},
	}
	for _, tc := range cases {
		got, err := ResolveFolder(tc.folder, tc.entity)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := ResolveFolder("../etc", "")
	requireStatus(t, err, http.StatusBadRequest)
	assert.EqualError(t, err, "Invalid folder. Allowed folders: blog, gallery, projects, services")
}

func TestLocalUploaderWritesFile(t *testing.T) {
	base := t.TempDir()
	uploader := LocalUploader{BasePath: base}

	url, err := uploader.Upload(context.Background(), FolderBlog, "Hero Image", []byte("data"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/media/blog/hero-image.png", url)

	written, err := os.ReadFile(filepath.Join(base, "blog", "hero-image.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), written)

	_, err = uploader.Upload(context.Background(), FolderBlog, "empty", nil, "image/png")
	requireStatus(t, err, http.StatusBadRequest)
}

func TestPrepareImageDownscales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3200, 800))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.RGBA{R: 200, A: 255}), image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, mime := PrepareImage(buf.Bytes(), "image/png")
	assert.Equal(t, "image/jpeg", mime)
	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, maxImageWidth, decoded.Bounds().Dx())
	assert.Equal(t, 400, decoded.Bounds().Dy())
}

func TestPrepareImageKeepsTransparency(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2000, 100))
	src.Set(10, 10, color.NRGBA{G: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, mime := PrepareImage(buf.Bytes(), "image/png")
	assert.Equal(t, "image/png", mime)
	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, maxImageWidth, decoded.Bounds().Dx())
	_, _, _, a := decoded.At(maxImageWidth-1, 50).RGBA()
	assert.Zero(t, a)
}

func TestPrepareImageKeepsUndecodable(t *testing.T) {
	out, mime := PrepareImage([]byte("not an image"), "image/webp")
	assert.Equal(t, []byte("not an image"), out)
	assert.Equal(t, "image/webp", mime)
}

func TestCloudinarySignUpload(t *testing.T) {
	cdn, err := NewCloudinaryUploader("demo", "key", "secret", "/website/")
	require.NoError(t, err)

	at := time.Unix(1700000000, 0)
	first, err := cdn.SignUpload(FolderGallery, at)
	require.NoError(t, err)
	second, err := cdn.SignUpload(FolderGallery, at)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "website/gallery", first.Folder)
	assert.EqualValues(t, 1700000000, first.Timestamp)
	assert.Equal(t, "key", first.APIKey)
	assert.Equal(t, "demo", first.CloudName)
	assert.NotEmpty(t, first.Signature)

	later, err := cdn.SignUpload(FolderGallery, at.Add(time.Second))
	require.NoError(t, err)
	assert.NotEqual(t, first.Signature, later.Signature)
}

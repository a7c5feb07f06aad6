package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/natefinch/atomic"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	FolderBlog     = "blog"
	FolderServices = "services"
	FolderProjects = "projects"
	FolderGallery  = "gallery"

	maxImageWidth = 1600
	jpegQuality   = 85
)

var uploadFolders = mapset.NewSet(FolderBlog, FolderServices, FolderProjects, FolderGallery)

// UploadFolders returns the allowed upload folders in sorted order.
func UploadFolders() []string {
	folders := uploadFolders.ToSlice()
	sort.Strings(folders)
	return folders
}

// ErrInvalidFolder names the allowed folders in its message.
func ErrInvalidFolder() error {
	return ErrBadRequest("Invalid folder. Allowed folders: " + strings.Join(UploadFolders(), ", "))
}

// ResolveFolder validates folder against the allow-list. An empty folder is
// derived from the entity type.
func ResolveFolder(folder, entityType string) (string, error) {
	folder = strings.ToLower(strings.TrimSpace(folder))
	if folder == "" {
		switch entityType {
		case EntityBlog:
			folder = FolderBlog
		case EntityService:
			folder = FolderServices
		case EntityProject:
			folder = FolderProjects
		default:
			folder = FolderGallery
		}
	}
	if !uploadFolders.Contains(folder) {
		return "", ErrInvalidFolder()
	}
	return folder, nil
}

// MediaUploader stores an image and returns the URL it is served from.
type MediaUploader interface {
	Upload(ctx context.Context, folder, name string, data []byte, mimeType string) (string, error)
}

// UploadSignature is what a browser needs to upload straight to Cloudinary.
type UploadSignature struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	Folder    string `json:"folder"`
	APIKey    string `json:"apiKey"`
	CloudName string `json:"cloudName"`
}

type CloudinaryUploader struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiKey    string
	apiSecret string
	prefix    string
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret, prefix string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &CloudinaryUploader{
		cld:       cld,
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		prefix:    strings.Trim(prefix, "/"),
	}, nil
}

func (c *CloudinaryUploader) fullFolder(folder string) string {
	if c.prefix == "" {
		return folder
	}
	return c.prefix + "/" + folder
}

// Upload sends data as a base64 data URI.
func (c *CloudinaryUploader) Upload(ctx context.Context, folder, name string, data []byte, mimeType string) (string, error) {
	dataURI := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	result, err := c.cld.Upload.Upload(ctx, dataURI, uploader.UploadParams{
		Folder:   c.fullFolder(folder),
		PublicID: name,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", errors.New("cloudinary upload: empty url")
	}
	return result.SecureURL, nil
}

// SignUpload signs the folder and timestamp for a direct browser upload.
func (c *CloudinaryUploader) SignUpload(folder string, at time.Time) (UploadSignature, error) {
	full := c.fullFolder(folder)
	timestamp := at.Unix()
	params := url.Values{}
	params.Set("folder", full)
	params.Set("timestamp", strconv.FormatInt(timestamp, 10))
	signature, err := api.SignParameters(params, c.apiSecret)
	if err != nil {
		return UploadSignature{}, fmt.Errorf("sign upload: %w", err)
	}
	return UploadSignature{
		Signature: signature,
		Timestamp: timestamp,
		Folder:    full,
		APIKey:    c.apiKey,
		CloudName: c.cloudName,
	}, nil
}

// LocalUploader writes images under a directory served at /media.
type LocalUploader struct {
	BasePath string
}

func EnsureStoragePath(base string, folder string) (string, error) {
	dir := filepath.Join(base, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func (l LocalUploader) Upload(_ context.Context, folder, name string, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", ErrBadRequest("Image is empty")
	}
	dir, err := EnsureStoragePath(l.BasePath, folder)
	if err != nil {
		return "", fmt.Errorf("media dir: %w", err)
	}
	filename := Slugify(name)
	if filename == "" {
		filename = ShortID()
	}
	filename += extensionFor(mimeType)
	if err := atomic.WriteFile(filepath.Join(dir, filename), bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("write media: %w", err)
	}
	return BuildMediaURL(folder, filename), nil
}

func BuildMediaURL(folder, filename string) string {
	return path.Join("/media", folder, filename)
}

func extensionFor(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}

// PrepareImage scales images wider than the maximum width down and re-encodes
// them as JPEG, or as PNG when the image has transparent pixels. Data that
// cannot be decoded is returned unchanged.
func PrepareImage(data []byte, mimeType string) ([]byte, string) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, mimeType
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}
	var buf bytes.Buffer
	if hasAlpha(img) {
		if err := png.Encode(&buf, img); err != nil {
			return data, mimeType
		}
		return buf.Bytes(), "image/png"
	}
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return data, mimeType
	}
	return buf.Bytes(), "image/jpeg"
}

func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}

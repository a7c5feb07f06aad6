package services

import (
	"encoding/json"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"sitecms-backend-go/internal/models"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"

	timestampLayout = "2006-01-02T15:04:05.000000Z"
	dateLayout      = "2006-01-02"
)

var validStatuses = mapset.NewSet(StatusDraft, StatusPublished)

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ContentSection struct {
	Type    string   `json:"type,omitempty"`
	Heading string   `json:"heading,omitempty"`
	Text    string   `json:"text,omitempty"`
	Items   []string `json:"items,omitempty"`
	Image   string   `json:"image,omitempty"`
}

type AIAnalysis struct {
	Summary       string   `json:"summary"`
	KeyPoints     []string `json:"keyPoints"`
	RelatedTopics []string `json:"relatedTopics"`
}

type BlogPost struct {
	Slug            string           `json:"slug"`
	Title           string           `json:"title"`
	Excerpt         string           `json:"excerpt"`
	Image           string           `json:"image"`
	Date            string           `json:"date"`
	Category        string           `json:"category"`
	ReadTime        string           `json:"readTime"`
	Author          string           `json:"author"`
	Content         []ContentSection `json:"content"`
	AIAnalysis      AIAnalysis       `json:"aiAnalysis"`
	FAQs            []FAQ            `json:"faqs"`
	HTMLContent     string           `json:"htmlContent"`
	FocusKeyword    string           `json:"focusKeyword"`
	Status          string           `json:"status"`
	MetaTitle       string           `json:"metaTitle"`
	MetaDescription string           `json:"metaDescription"`
	CreatedAt       string           `json:"createdAt"`
	UpdatedAt       string           `json:"updatedAt"`
}

type Service struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Image           string   `json:"image"`
	Features        []string `json:"features"`
	MediaType       *string  `json:"mediaType,omitempty"`
	HTMLContent     string   `json:"htmlContent"`
	FAQs            []FAQ    `json:"faqs"`
	FocusKeyword    string   `json:"focusKeyword"`
	Status          string   `json:"status"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Slug            string   `json:"slug"`
	SortOrder       int      `json:"sortOrder"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

type Project struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	VideoURL        string `json:"videoUrl"`
	Image           string `json:"image"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Location        string `json:"location"`
	HTMLContent     string `json:"htmlContent"`
	FAQs            []FAQ  `json:"faqs"`
	FocusKeyword    string `json:"focusKeyword"`
	Status          string `json:"status"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	Slug            string `json:"slug"`
	SortOrder       int    `json:"sortOrder"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

type GalleryItem struct {
	ID        string `json:"id"`
	Src       string `json:"src"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	SortOrder int    `json:"sortOrder"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func mapBlogPost(row models.BlogPostRow) BlogPost {
	analysis := AIAnalysis{}
	decodeJSON(row.AIAnalysis, &analysis)
	if analysis.KeyPoints == nil {
		analysis.KeyPoints = []string{}
	}
	if analysis.RelatedTopics == nil {
		analysis.RelatedTopics = []string{}
	}
	return BlogPost{
		Slug:            row.Slug,
		Title:           row.Title,
		Excerpt:         row.Excerpt,
		Image:           row.Image,
		Date:            row.Date,
		Category:        row.Category,
		ReadTime:        row.ReadTime,
		Author:          row.Author,
		Content:         decodeList[ContentSection](row.Content),
		AIAnalysis:      analysis,
		FAQs:            decodeList[FAQ](row.FAQs),
		HTMLContent:     row.HTMLContent,
		FocusKeyword:    row.FocusKeyword,
		Status:          row.Status,
		MetaTitle:       row.MetaTitle,
		MetaDescription: row.MetaDescription,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func mapService(row models.ServiceRow) Service {
	var mediaType *string
	if row.MediaType != nil && *row.MediaType != "" {
		value := *row.MediaType
		mediaType = &value
	}
	return Service{
		ID:              row.ID,
		Title:           row.Title,
		Description:     row.Description,
		Image:           row.Image,
		Features:        decodeList[string](row.Features),
		MediaType:       mediaType,
		HTMLContent:     row.HTMLContent,
		FAQs:            decodeList[FAQ](row.FAQs),
		FocusKeyword:    row.FocusKeyword,
		Status:          row.Status,
		MetaTitle:       row.MetaTitle,
		MetaDescription: row.MetaDescription,
		Slug:            row.Slug,
		SortOrder:       row.SortOrder,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func mapProject(row models.ProjectRow) Project {
	return Project{
		ID:              row.ID,
		Title:           row.Title,
		VideoURL:        row.VideoURL,
		Image:           row.Image,
		Description:     row.Description,
		Category:        row.Category,
		Location:        row.Location,
		HTMLContent:     row.HTMLContent,
		FAQs:            decodeList[FAQ](row.FAQs),
		FocusKeyword:    row.FocusKeyword,
		Status:          row.Status,
		MetaTitle:       row.MetaTitle,
		MetaDescription: row.MetaDescription,
		Slug:            row.Slug,
		SortOrder:       row.SortOrder,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func mapGalleryItem(row models.GalleryRow) GalleryItem {
	return GalleryItem{
		ID:        row.ID,
		Src:       row.Src,
		Title:     row.Title,
		Category:  row.Category,
		SortOrder: row.SortOrder,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// decodeList parses a JSON array column. NULL, empty or malformed text yields
// an empty, non-nil slice.
func decodeList[T any](raw string) []T {
	items := []T{}
	if strings.TrimSpace(raw) == "" {
		return items
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []T{}
	}
	return items
}

func decodeJSON(raw string, dest interface{}) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	_ = json.Unmarshal([]byte(raw), dest)
}

func encodeJSON(value interface{}, empty string) string {
	data, err := json.Marshal(value)
	if err != nil || string(data) == "null" {
		return empty
	}
	return string(data)
}

func now() string {
	return time.Now().UTC().Format(timestampLayout)
}

func today() string {
	return time.Now().UTC().Format(dateLayout)
}

func normalizeStatus(raw string) (string, error) {
	status := strings.ToLower(strings.TrimSpace(raw))
	if status == "" {
		return StatusDraft, nil
	}
	if !validStatuses.Contains(status) {
		return "", ErrBadRequest("Status must be draft or published")
	}
	return status, nil
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"sitecms-backend-go/internal/services"
)

const (
	EntityBlog    = services.EntityBlog
	EntityService = services.EntityService
	EntityProject = services.EntityProject

	topicBatchSize = 6
	minSEOScore    = 40
	maxSEOScore    = 100
)

var entityTypes = mapset.NewSet(EntityBlog, EntityService, EntityProject)

func validEntityType(entityType string) error {
	if !entityTypes.Contains(entityType) {
		return services.ErrBadRequest("entityType must be blog, service or project")
	}
	return nil
}

type GenerateRequest struct {
	EntityType string   `json:"entityType"`
	Title      string   `json:"title"`
	Keywords   []string `json:"keywords"`
	LocalSEO   string   `json:"localSeo"`
	ExtraNote  string   `json:"extraNote"`
}

// Generated holds the drafted fields of an entity. Fields that do not apply
// to the requested entity type are omitted.
type Generated struct {
	Title           string               `json:"title"`
	Slug            string               `json:"slug"`
	HTMLContent     string               `json:"htmlContent"`
	MetaTitle       string               `json:"metaTitle"`
	MetaDescription string               `json:"metaDescription"`
	FocusKeyword    string               `json:"focusKeyword"`
	FAQs            []services.FAQ       `json:"faqs"`
	Excerpt         string               `json:"excerpt,omitempty"`
	Category        string               `json:"category,omitempty"`
	ReadTime        string               `json:"readTime,omitempty"`
	AIAnalysis      *services.AIAnalysis `json:"aiAnalysis,omitempty"`
	Description     string               `json:"description,omitempty"`
	Features        []string             `json:"features,omitempty"`
	Location        string               `json:"location,omitempty"`
}

type SEORequest struct {
	FocusKeyword    string `json:"focusKeyword"`
	Content         string `json:"content"`
	Title           string `json:"title"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	Slug            string `json:"slug"`
}

type SEOResult struct {
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Slug            string   `json:"slug"`
	FocusKeyword    string   `json:"focusKeyword"`
	Suggestions     []string `json:"suggestions"`
}

type seoReply struct {
	Title           string   `json:"title"`
	HTMLContent     string   `json:"htmlContent"`
	Content         string   `json:"content"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Slug            string   `json:"slug"`
	Suggestions     []string `json:"suggestions"`
}

type TopicRequest struct {
	EntityType string   `json:"entityType"`
	Batch      int      `json:"batch"`
	Existing   []string `json:"-"`
}

type Topic struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
	SEOScore int      `json:"seoScore"`
}

type topicReply struct {
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
	SEOScore float64  `json:"seoScore"`
}

// topicList accepts a bare array or an object wrapping it under "topics".
type topicList []topicReply

func (l *topicList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Topics []topicReply `json:"topics"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return err
		}
		*l = wrapped.Topics
		return nil
	}
	var items []topicReply
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// ContentGenerator drafts text content. It keeps no state between calls.
type ContentGenerator struct {
	model Model
}

func NewContentGenerator(model Model) *ContentGenerator {
	return &ContentGenerator{model: model}
}

// generateJSON asks the model for JSON and decodes the reply into a fresh T.
// A reply that cannot be parsed is re-requested exactly once with a stricter
// instruction.
func generateJSON[T any](ctx context.Context, model Model, prompt string) (T, error) {
	var zero T
	raw, err := model.GenerateText(ctx, prompt)
	if err != nil {
		return zero, serviceError(err)
	}
	var first T
	parseErr := parseResponse(raw, &first)
	if parseErr == nil {
		return first, nil
	}
	logrus.WithError(parseErr).Warn("ai: unparseable reply, retrying once")
	raw, err = model.GenerateText(ctx, prompt+pureJSONReminder)
	if err != nil {
		return zero, serviceError(err)
	}
	var second T
	if err := parseResponse(raw, &second); err != nil {
		return zero, serviceError(err)
	}
	return second, nil
}

func (g *ContentGenerator) Generate(ctx context.Context, req GenerateRequest) (Generated, error) {
	req.EntityType = strings.TrimSpace(req.EntityType)
	req.Title = strings.TrimSpace(req.Title)
	req.LocalSEO = strings.TrimSpace(req.LocalSEO)
	req.ExtraNote = strings.TrimSpace(req.ExtraNote)
	if err := validEntityType(req.EntityType); err != nil {
		return Generated{}, err
	}
	if req.Title == "" {
		return Generated{}, services.ErrBadRequest("Title is required")
	}
	req.Keywords = cleanKeywords(req.Keywords)

	out, err := generateJSON[Generated](ctx, g.model, contentPrompt(req))
	if err != nil {
		return Generated{}, err
	}
	if strings.TrimSpace(out.Title) == "" {
		out.Title = req.Title
	}
	if slug := services.Slugify(out.Slug); slug != "" {
		out.Slug = slug
	} else {
		out.Slug = services.SlugOrID(out.Title)
	}
	if out.FocusKeyword == "" && len(req.Keywords) > 0 {
		out.FocusKeyword = req.Keywords[0]
	}
	if out.FAQs == nil {
		out.FAQs = []services.FAQ{}
	}
	switch req.EntityType {
	case EntityBlog:
		if out.AIAnalysis == nil {
			out.AIAnalysis = &services.AIAnalysis{}
		}
		if out.AIAnalysis.KeyPoints == nil {
			out.AIAnalysis.KeyPoints = []string{}
		}
		if out.AIAnalysis.RelatedTopics == nil {
			out.AIAnalysis.RelatedTopics = []string{}
		}
		out.Description, out.Features, out.Location = "", nil, ""
	case EntityService:
		if out.Features == nil {
			out.Features = []string{}
		}
		out.Excerpt, out.Category, out.ReadTime, out.AIAnalysis, out.Location = "", "", "", nil, ""
	case EntityProject:
		if out.Location == "" {
			out.Location = req.LocalSEO
		}
		out.Excerpt, out.ReadTime, out.AIAnalysis, out.Features = "", "", nil, nil
	}
	return out, nil
}

// OptimizeSEO rewrites content around a focus keyword. Any field the model
// leaves out keeps its input value.
func (g *ContentGenerator) OptimizeSEO(ctx context.Context, req SEORequest) (SEOResult, error) {
	req.FocusKeyword = strings.TrimSpace(req.FocusKeyword)
	if req.FocusKeyword == "" || strings.TrimSpace(req.Content) == "" {
		return SEOResult{}, services.ErrBadRequest("focusKeyword and content are required")
	}
	reply, err := generateJSON[seoReply](ctx, g.model, seoPrompt(req))
	if err != nil {
		return SEOResult{}, err
	}
	content := firstNonEmpty(reply.HTMLContent, reply.Content, req.Content)
	result := SEOResult{
		Title:           firstNonEmpty(reply.Title, req.Title),
		Content:         content,
		MetaTitle:       firstNonEmpty(reply.MetaTitle, req.MetaTitle),
		MetaDescription: firstNonEmpty(reply.MetaDescription, req.MetaDescription),
		Slug:            req.Slug,
		FocusKeyword:    req.FocusKeyword,
		Suggestions:     reply.Suggestions,
	}
	if slug := services.Slugify(reply.Slug); slug != "" {
		result.Slug = slug
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	return result, nil
}

// SuggestTopics proposes a batch of new topics. Ids continue across batches
// and scores are clamped into [40, 100].
func (g *ContentGenerator) SuggestTopics(ctx context.Context, req TopicRequest) ([]Topic, error) {
	req.EntityType = strings.TrimSpace(req.EntityType)
	if req.EntityType == "" {
		req.EntityType = EntityBlog
	}
	if err := validEntityType(req.EntityType); err != nil {
		return nil, err
	}
	if req.Batch < 0 {
		req.Batch = 0
	}
	reply, err := generateJSON[topicList](ctx, g.model, topicsPrompt(req))
	if err != nil {
		return nil, err
	}
	if len(reply) > topicBatchSize {
		reply = reply[:topicBatchSize]
	}
	topics := make([]Topic, 0, len(reply))
	for i, item := range reply {
		keywords := item.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		topics = append(topics, Topic{
			ID:       req.Batch*topicBatchSize + i + 1,
			Title:    strings.TrimSpace(item.Title),
			Keywords: keywords,
			SEOScore: clampScore(item.SEOScore),
		})
	}
	return topics, nil
}

func clampScore(score float64) int {
	rounded := int(math.Round(score))
	if rounded < minSEOScore {
		return minSEOScore
	}
	if rounded > maxSEOScore {
		return maxSEOScore
	}
	return rounded
}

func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			out = append(out, keyword)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

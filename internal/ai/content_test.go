package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecms-backend-go/internal/services"
)

func TestGenerateBlogFirstTry(t *testing.T) {
	model := &scriptedModel{replies: []string{`{
		"title": "Kitchen Ideas",
		"slug": "Kitchen Ideas 2024!",
		"htmlContent": "<p>hi</p>",
		"excerpt": "short",
		"features": ["should be dropped"]
	}`}}
	out, err := NewContentGenerator(model).Generate(context.Background(), GenerateRequest{
		EntityType: EntityBlog,
		Title:      "Kitchen ideas",
		Keywords:   []string{" ", "kitchen renovation"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, model.calls())
	assert.Equal(t, "kitchen-ideas-2024", out.Slug)
	assert.Equal(t, "kitchen renovation", out.FocusKeyword)
	assert.Equal(t, "short", out.Excerpt)
	assert.Nil(t, out.Features)
	require.NotNil(t, out.AIAnalysis)
	assert.Equal(t, []string{}, out.AIAnalysis.KeyPoints)
	assert.Equal(t, []services.FAQ{}, out.FAQs)
}

func TestGenerateSlugForNonLatinTitles(t *testing.T) {
	model := &scriptedModel{replies: []string{
		`{"title": "Çatı Tamiri", "slug": ""}`,
		`{"title": "Ремонт кухни", "slug": "ремонт"}`,
	}}
	gen := NewContentGenerator(model)

	out, err := gen.Generate(context.Background(), GenerateRequest{EntityType: EntityService, Title: "Çatı Tamiri"})
	require.NoError(t, err)
	assert.Equal(t, "cati-tamiri", out.Slug)

	out, err = gen.Generate(context.Background(), GenerateRequest{EntityType: EntityService, Title: "Ремонт кухни"})
	require.NoError(t, err)
	assert.Len(t, out.Slug, 10)
	assert.True(t, services.ValidSlug(out.Slug))
}

func TestGenerateServiceFromFencedReply(t *testing.T) {
	model := &scriptedModel{replies: []string{"```json\n{\"description\": \"Tiles\", \"readTime\": \"3 min\"}\n```"}}
	out, err := NewContentGenerator(model).Generate(context.Background(), GenerateRequest{
		EntityType: EntityService,
		Title:      "Bathroom Tiling",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bathroom Tiling", out.Title)
	assert.Equal(t, "bathroom-tiling", out.Slug)
	assert.Equal(t, "Tiles", out.Description)
	assert.Equal(t, "", out.ReadTime)
	assert.Equal(t, []string{}, out.Features)
	assert.Nil(t, out.AIAnalysis)
}

func TestGenerateProjectUsesLocalSEO(t *testing.T) {
	model := &scriptedModel{replies: []string{`{"title": "Loft"}`}}
	out, err := NewContentGenerator(model).Generate(context.Background(), GenerateRequest{
		EntityType: EntityProject,
		Title:      "Loft",
		LocalSEO:   "Kifisia",
	})
	require.NoError(t, err)
	assert.Equal(t, "Kifisia", out.Location)
	assert.Contains(t, model.prompts[0], "Kifisia")
}

func TestGenerateRetriesOnce(t *testing.T) {
	model := &scriptedModel{replies: []string{"Sorry, here you go: title=Loft", `{"title": "Loft"}`}}
	out, err := NewContentGenerator(model).Generate(context.Background(), GenerateRequest{
		EntityType: EntityProject,
		Title:      "Loft",
	})
	require.NoError(t, err)
	assert.Equal(t, "Loft", out.Title)
	require.Equal(t, 2, model.calls())
	assert.True(t, strings.HasSuffix(model.prompts[1], pureJSONReminder))
	assert.False(t, strings.HasSuffix(model.prompts[0], pureJSONReminder))
}

func TestGenerateFailsAfterSecondBadReply(t *testing.T) {
	model := &scriptedModel{replies: []string{"nope", "still nope", `{"title": "never asked"}`}}
	_, err := NewContentGenerator(model).Generate(context.Background(), GenerateRequest{
		EntityType: EntityBlog,
		Title:      "Anything",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, services.StatusOf(err))
	assert.Equal(t, 2, model.calls())
}

func TestGenerateValidation(t *testing.T) {
	gen := NewContentGenerator(&scriptedModel{})
	_, err := gen.Generate(context.Background(), GenerateRequest{EntityType: "gallery", Title: "x"})
	assert.Equal(t, http.StatusBadRequest, services.StatusOf(err))
	_, err = gen.Generate(context.Background(), GenerateRequest{EntityType: EntityBlog})
	assert.Equal(t, http.StatusBadRequest, services.StatusOf(err))
}

func TestGenerateMapsModelErrors(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("%w: quota", ErrRateLimited): http.StatusTooManyRequests,
		ErrNotConfigured:                        http.StatusInternalServerError,
		fmt.Errorf("boom"):                      http.StatusInternalServerError,
	}
	for modelErr, status := range cases {
		gen := NewContentGenerator(&scriptedModel{err: modelErr})
		_, err := gen.Generate(context.Background(), GenerateRequest{EntityType: EntityBlog, Title: "x"})
		assert.Equal(t, status, services.StatusOf(err), "model error %v", modelErr)
	}

	_, err := NewContentGenerator(Unconfigured{}).OptimizeSEO(context.Background(), SEORequest{FocusKeyword: "k", Content: "c"})
	var serr services.ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "AI is not configured", serr.Message)
}

func TestOptimizeSEOFallsBackToInput(t *testing.T) {
	model := &scriptedModel{replies: []string{`{"htmlContent": "<h2>kitchen</h2>", "slug": "New Slug"}`}}
	out, err := NewContentGenerator(model).OptimizeSEO(context.Background(), SEORequest{
		FocusKeyword:    " kitchen ",
		Content:         "<p>old</p>",
		Title:           "Old title",
		MetaTitle:       "Old meta",
		MetaDescription: "Old description",
		Slug:            "old-slug",
	})
	require.NoError(t, err)
	assert.Equal(t, SEOResult{
		Title:           "Old title",
		Content:         "<h2>kitchen</h2>",
		MetaTitle:       "Old meta",
		MetaDescription: "Old description",
		Slug:            "new-slug",
		FocusKeyword:    "kitchen",
		Suggestions:     []string{},
	}, out)

	_, err = NewContentGenerator(model).OptimizeSEO(context.Background(), SEORequest{Content: "x"})
	assert.Equal(t, http.StatusBadRequest, services.StatusOf(err))
}

func TestSuggestTopicsNumbersAndClamps(t *testing.T) {
	model := &scriptedModel{replies: []string{`{"topics": [
		{"title": " Low ", "keywords": ["a"], "seoScore": 12},
		{"title": "High", "seoScore": 140},
		{"title": "Mid", "keywords": [], "seoScore": 72.6}
	]}`}}
	topics, err := NewContentGenerator(model).SuggestTopics(context.Background(), TopicRequest{
		Batch:    2,
		Existing: []string{"Planning a Kitchen Renovation"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Topic{
		{ID: 13, Title: "Low", Keywords: []string{"a"}, SEOScore: 40},
		{ID: 14, Title: "High", Keywords: []string{}, SEOScore: 100},
		{ID: 15, Title: "Mid", Keywords: []string{}, SEOScore: 73},
	}, topics)
	assert.Contains(t, model.prompts[0], "Planning a Kitchen Renovation")
}

func TestSuggestTopicsCapsBatch(t *testing.T) {
	items := make([]string, 0, topicBatchSize+3)
	for i := 0; i < topicBatchSize+3; i++ {
		items = append(items, fmt.Sprintf(`{"title": "Topic %d", "seoScore": 70}`, i))
	}
	model := &scriptedModel{replies: []string{"[" + strings.Join(items, ",") + "]"}}
	topics, err := NewContentGenerator(model).SuggestTopics(context.Background(), TopicRequest{Batch: 1})
	require.NoError(t, err)
	require.Len(t, topics, topicBatchSize)
	assert.Equal(t, topicBatchSize+1, topics[0].ID)
	assert.Equal(t, 2*topicBatchSize, topics[len(topics)-1].ID)
}

func TestSuggestTopicsAcceptsBareArray(t *testing.T) {
	model := &scriptedModel{replies: []string{`[{"title": "One", "keywords": ["k"], "seoScore": 80}]`}}
	topics, err := NewContentGenerator(model).SuggestTopics(context.Background(), TopicRequest{EntityType: EntityService})
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, 1, topics[0].ID)

	_, err = NewContentGenerator(model).SuggestTopics(context.Background(), TopicRequest{EntityType: "gallery"})
	assert.Equal(t, http.StatusBadRequest, services.StatusOf(err))
}

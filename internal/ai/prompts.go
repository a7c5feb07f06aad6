package ai

import (
	"fmt"
	"strings"
)

const pureJSONReminder = "\n\nIMPORTANT: respond with pure JSON only. No markdown, no code fences, no commentary."

var entityLabels = map[string]string{
	EntityBlog:    "blog article",
	EntityService: "service page",
	EntityProject: "completed project case study",
}

func contentPrompt(req GenerateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an SEO copywriter for a local renovation and construction business.\n")
	fmt.Fprintf(&b, "Write a %s titled %q.\n", entityLabels[req.EntityType], req.Title)
	if len(req.Keywords) > 0 {
		fmt.Fprintf(&b, "Target keywords: %s.\n", strings.Join(req.Keywords, ", "))
	}
	if req.LocalSEO != "" {
		fmt.Fprintf(&b, "Optimize for local search in %s and mention the area naturally.\n", req.LocalSEO)
	}
	if req.ExtraNote != "" {
		fmt.Fprintf(&b, "Additional instructions: %s\n", req.ExtraNote)
	}
	b.WriteString("\nThe htmlContent must use semantic HTML (h2, h3, p, ul, li) without html, head or body tags.\n")
	b.WriteString("metaTitle must be at most 60 characters and metaDescription at most 160 characters.\n")
	b.WriteString("slug must be lowercase latin letters, digits and dashes.\n")
	b.WriteString("\nReturn a JSON object with exactly these fields:\n")
	b.WriteString(`{
  "title": "string",
  "slug": "string",
  "htmlContent": "string",
  "metaTitle": "string",
  "metaDescription": "string",
  "focusKeyword": "string",
  "faqs": [{"question": "string", "answer": "string"}]`)
	switch req.EntityType {
	case EntityBlog:
		b.WriteString(`,
  "excerpt": "string",
  "category": "string",
  "readTime": "string, e.g. 5 min",
  "aiAnalysis": {"summary": "string", "keyPoints": ["string"], "relatedTopics": ["string"]}`)
	case EntityService:
		b.WriteString(`,
  "description": "string",
  "features": ["string"]`)
	case EntityProject:
		b.WriteString(`,
  "description": "string",
  "category": "string",
  "location": "string"`)
	}
	b.WriteString("\n}\nInclude 3 to 5 FAQs.")
	return b.String()
}

func seoPrompt(req SEORequest) string {
	var b strings.Builder
	b.WriteString("You are an SEO editor. Improve the following content for the focus keyword ")
	fmt.Fprintf(&b, "%q without changing its meaning.\n", req.FocusKeyword)
	if req.Title != "" {
		fmt.Fprintf(&b, "Current title: %s\n", req.Title)
	}
	if req.MetaTitle != "" {
		fmt.Fprintf(&b, "Current meta title: %s\n", req.MetaTitle)
	}
	if req.MetaDescription != "" {
		fmt.Fprintf(&b, "Current meta description: %s\n", req.MetaDescription)
	}
	if req.Slug != "" {
		fmt.Fprintf(&b, "Current slug: %s\n", req.Slug)
	}
	fmt.Fprintf(&b, "\nContent (HTML):\n%s\n", req.Content)
	b.WriteString(`
Use the focus keyword in the title, the first paragraph, at least one h2 and the meta description.
Return a JSON object:
{"title": "string", "htmlContent": "string", "metaTitle": "string", "metaDescription": "string", "slug": "string", "suggestions": ["string"]}`)
	return b.String()
}

func topicsPrompt(req TopicRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest %d new %s topics for a local renovation and construction business website.\n",
		topicBatchSize, entityLabels[req.EntityType])
	if len(req.Existing) > 0 {
		b.WriteString("Avoid these existing titles and close variations of them:\n")
		for _, title := range req.Existing {
			fmt.Fprintf(&b, "- %s\n", title)
		}
	}
	if req.Batch > 0 {
		fmt.Fprintf(&b, "This is request number %d; give ideas different from earlier batches.\n", req.Batch+1)
	}
	b.WriteString(`Estimate an SEO potential score between 40 and 100 for each.
Return a JSON array:
[{"title": "string", "keywords": ["string"], "seoScore": 75}]`)
	return b.String()
}

func imagePrompt(req ImageRequest) string {
	subject := strings.TrimSpace(req.Title)
	style := "a bright, realistic professional photograph"
	switch req.EntityType {
	case EntityService:
		style = "a realistic photograph of skilled workers performing the service in a modern home"
	case EntityProject:
		style = "a realistic photograph of the finished renovation, wide angle, natural light"
	}
	return fmt.Sprintf("Generate %s illustrating: %s. No text, no logos, no watermarks. Landscape 16:9 composition.",
		style, subject)
}

package services

import (
	"context"
	"encoding/json"
	"strings"

	"sitecms-backend-go/internal/db"
	"sitecms-backend-go/internal/models"
)

const (
	EntityBlog = "blog"

	blogTable   = "blog_posts"
	blogColumns = `slug, title, excerpt, image, date, category, read_time, author, content, ai_analysis,
faqs, html_content, focus_keyword, status, meta_title, meta_description, created_at, updated_at`
)

var blogFields = fieldTable{
	{Key: "title", Column: "title", Kind: kindText},
	{Key: "excerpt", Column: "excerpt", Kind: kindText},
	{Key: "image", Column: "image", Kind: kindText},
	{Key: "date", Column: "date", Kind: kindText},
	{Key: "category", Column: "category", Kind: kindText},
	{Key: "readTime", Column: "read_time", Kind: kindText},
	{Key: "author", Column: "author", Kind: kindText},
	{Key: "content", Column: "content", Kind: kindSections},
	{Key: "aiAnalysis", Column: "ai_analysis", Kind: kindObject},
	{Key: "faqs", Column: "faqs", Kind: kindFAQs},
	{Key: "htmlContent", Column: "html_content", Kind: kindText},
	{Key: "focusKeyword", Column: "focus_keyword", Kind: kindText},
	{Key: "status", Column: "status", Kind: kindStatus},
	{Key: "metaTitle", Column: "meta_title", Kind: kindText},
	{Key: "metaDescription", Column: "meta_description", Kind: kindText},
}

var blogInsert = `INSERT INTO blog_posts (` + blogColumns + `) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`

func blogArgs(post BlogPost, stamp string) []interface{} {
	analysis := post.AIAnalysis
	analysis.KeyPoints = nonNil(analysis.KeyPoints)
	analysis.RelatedTopics = nonNil(analysis.RelatedTopics)
	return []interface{}{
		post.Slug, post.Title, post.Excerpt, post.Image, post.Date, post.Category, post.ReadTime, post.Author,
		encodeJSON(nonNil(post.Content), "[]"), encodeJSON(analysis, "{}"), encodeJSON(nonNil(post.FAQs), "[]"),
		post.HTMLContent, post.FocusKeyword, post.Status, post.MetaTitle, post.MetaDescription, stamp, stamp,
	}
}

type BlogStore struct {
	gw     *db.Gateway
	events *EventHub
}

func NewBlogStore(gw *db.Gateway, events *EventHub) *BlogStore {
	return &BlogStore{gw: gw, events: events}
}

// List returns posts newest first, optionally filtered by status.
func (s *BlogStore) List(ctx context.Context, status string) ([]BlogPost, error) {
	query, args := listQuery(blogColumns, blogTable, "created_at DESC, slug ASC", strings.TrimSpace(status))
	rows := []models.BlogPostRow{}
	if err := s.gw.Select(ctx, &rows, query, args...); err != nil {
		return nil, ErrPersistence("Internal server error", err)
	}
	posts := make([]BlogPost, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, mapBlogPost(row))
	}
	return posts, nil
}

func (s *BlogStore) Get(ctx context.Context, slug string) (BlogPost, error) {
	row := models.BlogPostRow{}
	if err := s.gw.Get(ctx, &row, `SELECT `+blogColumns+` FROM blog_posts WHERE slug = ?`, slug); err != nil {
		if db.IsNotFound(err) {
			return BlogPost{}, ErrNotFound("Post not found")
		}
		return BlogPost{}, ErrPersistence("Internal server error", err)
	}
	return mapBlogPost(row), nil
}

// Create inserts a post and returns its slug.
func (s *BlogStore) Create(ctx context.Context, post BlogPost) (string, error) {
	title := strings.TrimSpace(post.Title)
	raw := strings.TrimSpace(post.Slug)
	slug := raw
	if !ValidSlug(slug) {
		slug = Slugify(slug)
	}
	if raw != "" && slug == "" && title != "" {
		slug = SlugOrID(title)
	}
	if slug == "" || title == "" {
		return "", ErrBadRequest("Slug and title are required")
	}
	status, err := normalizeStatus(post.Status)
	if err != nil {
		return "", err
	}
	exists, err := rowExists(ctx, s.gw, blogTable, "slug", slug)
	if err != nil {
		return "", ErrPersistence("Could not save blog post", err)
	}
	if exists {
		return "", ErrBadRequest("A post with this slug already exists")
	}
	date := strings.TrimSpace(post.Date)
	if date == "" {
		date = today()
	}
	post.Slug, post.Title, post.Status, post.Date = slug, title, status, date
	_, err = s.gw.Exec(ctx, blogInsert, blogArgs(post, now())...)
	if err != nil {
		return "", ErrPersistence("Could not save blog post", err)
	}
	s.events.Publish(EntityBlog, ActionCreated, slug)
	return slug, nil
}

// Update writes the supplied fields of body. A "newSlug" key renames the post;
// the returned slug is the post's key after the update.
func (s *BlogStore) Update(ctx context.Context, slug string, body map[string]json.RawMessage) (string, error) {
	var extra []assignment
	target := slug
	if raw, ok := body["newSlug"]; ok {
		var requested string
		if err := json.Unmarshal(raw, &requested); err != nil {
			return "", ErrBadRequest("Invalid value for newSlug")
		}
		requested = strings.TrimSpace(requested)
		if !ValidSlug(requested) {
			requested = Slugify(requested)
		}
		if requested != "" && requested != slug {
			exists, err := rowExists(ctx, s.gw, blogTable, "slug", requested)
			if err != nil {
				return "", ErrPersistence("Could not update blog post", err)
			}
			if exists {
				return "", ErrBadRequest("A post with this slug already exists")
			}
			extra = append(extra, assignment{Column: "slug", Value: requested})
			target = requested
		}
	}
	if err := updateRow(ctx, s.gw, blogTable, "slug", slug, blogFields, body, extra, "post"); err != nil {
		return "", err
	}
	s.events.Publish(EntityBlog, ActionUpdated, target)
	return target, nil
}

func (s *BlogStore) Delete(ctx context.Context, slug string) error {
	if err := deleteRow(ctx, s.gw, blogTable, "slug", slug, "post"); err != nil {
		return err
	}
	s.events.Publish(EntityBlog, ActionDeleted, slug)
	return nil
}

// Titles lists every stored post title, used to keep AI topic suggestions fresh.
func (s *BlogStore) Titles(ctx context.Context) ([]string, error) {
	titles := []string{}
	if err := s.gw.Select(ctx, &titles, `SELECT title FROM blog_posts ORDER BY created_at DESC`); err != nil {
		return nil, ErrPersistence("Internal server error", err)
	}
	return titles, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

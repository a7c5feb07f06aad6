package services

import (
	"context"
	"encoding/json"
	"strings"

	"sitecms-backend-go/internal/db"
	"sitecms-backend-go/internal/models"
)

const (
	EntityProject = "project"

	projectTable   = "projects"
	projectColumns = `id, title, video_url, image, description, category, location, html_content, faqs,
focus_keyword, status, meta_title, meta_description, slug, sort_order, created_at, updated_at`
)

var projectFields = fieldTable{
	{Key: "title", Column: "title", Kind: kindText},
	{Key: "videoUrl", Column: "video_url", Kind: kindText},
	{Key: "image", Column: "image", Kind: kindText},
	{Key: "description", Column: "description", Kind: kindText},
	{Key: "category", Column: "category", Kind: kindText},
	{Key: "location", Column: "location", Kind: kindText},
	{Key: "htmlContent", Column: "html_content", Kind: kindText},
	{Key: "faqs", Column: "faqs", Kind: kindFAQs},
	{Key: "focusKeyword", Column: "focus_keyword", Kind: kindText},
	{Key: "status", Column: "status", Kind: kindStatus},
	{Key: "metaTitle", Column: "meta_title", Kind: kindText},
	{Key: "metaDescription", Column: "meta_description", Kind: kindText},
	{Key: "slug", Column: "slug", Kind: kindText},
	{Key: "sortOrder", Column: "sort_order", Kind: kindInt},
}

var projectInsert = `INSERT INTO projects (` + projectColumns + `) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`

func projectArgs(item Project, stamp string) []interface{} {
	return []interface{}{
		item.ID, item.Title, item.VideoURL, item.Image, item.Description, item.Category, item.Location,
		item.HTMLContent, encodeJSON(nonNil(item.FAQs), "[]"), item.FocusKeyword, item.Status,
		item.MetaTitle, item.MetaDescription, item.Slug, item.SortOrder, stamp, stamp,
	}
}

type ProjectStore struct {
	gw              *db.Gateway
	events          *EventHub
	defaultLocation string
}

// NewProjectStore returns a store that fills in defaultLocation for projects
// created without one.
func NewProjectStore(gw *db.Gateway, events *EventHub, defaultLocation string) *ProjectStore {
	return &ProjectStore{gw: gw, events: events, defaultLocation: defaultLocation}
}

func (s *ProjectStore) List(ctx context.Context, status string) ([]Project, error) {
	query, args := listQuery(projectColumns, projectTable, "sort_order ASC, created_at ASC", strings.TrimSpace(status))
	rows := []models.ProjectRow{}
	if err := s.gw.Select(ctx, &rows, query, args...); err != nil {
		return nil, ErrPersistence("Internal server error", err)
	}
	items := make([]Project, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapProject(row))
	}
	return items, nil
}

func (s *ProjectStore) Get(ctx context.Context, id string) (Project, error) {
	row := models.ProjectRow{}
	if err := s.gw.Get(ctx, &row, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id); err != nil {
		if db.IsNotFound(err) {
			return Project{}, ErrNotFound("Project not found")
		}
		return Project{}, ErrPersistence("Internal server error", err)
	}
	return mapProject(row), nil
}

func (s *ProjectStore) Create(ctx context.Context, item Project) (string, error) {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return "", ErrBadRequest("Title is required")
	}
	status, err := normalizeStatus(item.Status)
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(item.ID)
	if id == "" {
		id = ShortID()
	}
	slug := strings.TrimSpace(item.Slug)
	if slug == "" {
		slug = SlugOrID(title)
	}
	location := strings.TrimSpace(item.Location)
	if location == "" {
		location = s.defaultLocation
	}
	order, err := nextSortOrder(ctx, s.gw, projectTable)
	if err != nil {
		return "", ErrPersistence("Could not save project", err)
	}
	item.ID, item.Title, item.Status, item.Slug, item.Location, item.SortOrder = id, title, status, slug, location, order
	_, err = s.gw.Exec(ctx, projectInsert, projectArgs(item, now())...)
	if err != nil {
		return "", ErrPersistence("Could not save project", err)
	}
	s.events.Publish(EntityProject, ActionCreated, id)
	return id, nil
}

func (s *ProjectStore) Update(ctx context.Context, id string, body map[string]json.RawMessage) error {
	if err := updateRow(ctx, s.gw, projectTable, "id", id, projectFields, body, nil, "project"); err != nil {
		return err
	}
	s.events.Publish(EntityProject, ActionUpdated, id)
	return nil
}

func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	if err := deleteRow(ctx, s.gw, projectTable, "id", id, "project"); err != nil {
		return err
	}
	s.events.Publish(EntityProject, ActionDeleted, id)
	return nil
}

func (s *ProjectStore) Titles(ctx context.Context) ([]string, error) {
	titles := []string{}
	if err := s.gw.Select(ctx, &titles, `SELECT title FROM projects ORDER BY sort_order`); err != nil {
		return nil, ErrPersistence("Internal server error", err)
	}
	return titles, nil
}

package services

import (
	"context"
	"encoding/json"
	"strings"

	"sitecms-backend-go/internal/db"
	"sitecms-backend-go/internal/models"
)

const (
	EntityService = "service"

	serviceTable   = "services"
	serviceColumns = `id, title, description, image, features, media_type, html_content, faqs, focus_keyword,
status, meta_title, meta_description, slug, sort_order, created_at, updated_at`

	MediaTypeVideo = "video"
)

var serviceFields = fieldTable{
	{Key: "title", Column: "title", Kind: kindText},
	{Key: "description", Column: "description", Kind: kindText},
	{Key: "image", Column: "image", Kind: kindText},
	{Key: "features", Column: "features", Kind: kindStringList},
	{Key: "mediaType", Column: "media_type", Kind: kindNullableText},
	{Key: "htmlContent", Column: "html_content", Kind: kindText},
	{Key: "faqs", Column: "faqs", Kind: kindFAQs},
	{Key: "focusKeyword", Column: "focus_keyword", Kind: kindText},
	{Key: "status", Column: "status", Kind: kindStatus},
	{Key: "metaTitle", Column: "meta_title", Kind: kindText},
	{Key: "metaDescription", Column: "meta_description", Kind: kindText},
	{Key: "slug", Column: "slug", Kind: kindText},
	{Key: "sortOrder", Column: "sort_order", Kind: kindInt},
}

var serviceInsert = `INSERT INTO services (` + serviceColumns + `) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`

func serviceArgs(item Service, stamp string) []interface{} {
	var mediaType interface{}
	if item.MediaType != nil && strings.TrimSpace(*item.MediaType) != "" {
		mediaType = strings.TrimSpace(*item.MediaType)
	}
	return []interface{}{
		item.ID, item.Title, item.Description, item.Image, encodeJSON(nonNil(item.Features), "[]"), mediaType,
		item.HTMLContent, encodeJSON(nonNil(item.FAQs), "[]"), item.FocusKeyword, item.Status,
		item.MetaTitle, item.MetaDescription, item.Slug, item.SortOrder, stamp, stamp,
	}
}

// ServiceStore persists the services offered by the business.
type ServiceStore struct {
	gw     *db.Gateway
	events *EventHub
}

func NewServiceStore(gw *db.Gateway, events *EventHub) *ServiceStore {
	return &ServiceStore{gw: gw, events: events}
}

func (s *ServiceStore) List(ctx context.Context, status string) ([]Service, error) {
	query, args := listQuery(serviceColumns, serviceTable, "sort_order ASC, created_at ASC", strings.TrimSpace(status))
	rows := []models.ServiceRow{}
	if err := s.gw.Select(ctx, &rows, query, args...); err != nil {
		return nil, ErrPersistence("Internal server error", err)
	}
	items := make([]Service, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapService(row))
	}
	return items, nil
}

func (s *ServiceStore) Get(ctx context.Context, id string) (Service, error) {
	row := models.ServiceRow{}
	if err := s.gw.Get(ctx, &row, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id); err != nil {
		if db.IsNotFound(err) {
			return Service{}, ErrNotFound("Service not found")
		}
		return Service{}, ErrPersistence("Internal server error", err)
	}
	return mapService(row), nil
}

// Create inserts a service at the end of the display order and returns its id.
func (s *ServiceStore) Create(ctx context.Context, item Service) (string, error) {
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
	order, err := nextSortOrder(ctx, s.gw, serviceTable)
	if err != nil {
		return "", ErrPersistence("Could not save service", err)
	}
	item.ID, item.Title, item.Status, item.Slug, item.SortOrder = id, title, status, slug, order
	_, err = s.gw.Exec(ctx, serviceInsert, serviceArgs(item, now())...)
	if err != nil {
		return "", ErrPersistence("Could not save service", err)
	}
	s.events.Publish(EntityService, ActionCreated, id)
	return id, nil
}

func (s *ServiceStore) Update(ctx context.Context, id string, body map[string]json.RawMessage) error {
	if err := updateRow(ctx, s.gw, serviceTable, "id", id, serviceFields, body, nil, "service"); err != nil {
		return err
	}
	s.events.Publish(EntityService, ActionUpdated, id)
	return nil
}

func (s *ServiceStore) Delete(ctx context.Context, id string) error {
	if err := deleteRow(ctx, s.gw, serviceTable, "id", id, "service"); err != nil {
		return err
	}
	s.events.Publish(EntityService, ActionDeleted, id)
	return nil
}

func (s *ServiceStore) Titles(ctx context.Context) ([]string, error) {
	titles := []string{}
	if err := s.gw.Select(ctx, &titles, `SELECT title FROM services ORDER BY sort_order`); err != nil {
		return nil, ErrPersistence("Internal server error", err)
	}
	return titles, nil
}

package services

import (
	"context"
	"encoding/json"
	"strings"

	"sitecms-backend-go/internal/db"
	"sitecms-backend-go/internal/models"
)

const (
	EntityGallery = "gallery"

	galleryTable   = "gallery"
	galleryColumns = `id, src, title, category, sort_order, created_at, updated_at`
)

var galleryFields = fieldTable{
	{Key: "src", Column: "src", Kind: kindText},
	{Key: "title", Column: "title", Kind: kindText},
	{Key: "category", Column: "category", Kind: kindText},
	{Key: "sortOrder", Column: "sort_order", Kind: kindInt},
}

var galleryInsert = `INSERT INTO gallery (` + galleryColumns + `) VALUES (?,?,?,?,?,?,?)`

func galleryArgs(item GalleryItem, stamp string) []interface{} {
	return []interface{}{item.ID, item.Src, item.Title, item.Category, item.SortOrder, stamp, stamp}
}

type GalleryStore struct {
	gw     *db.Gateway
	events *EventHub
}

func NewGalleryStore(gw *db.Gateway, events *EventHub) *GalleryStore {
	return &GalleryStore{gw: gw, events: events}
}

// List returns gallery items in display order. Gallery items carry no status,
// so the filter only narrows by category.
func (s *GalleryStore) List(ctx context.Context, category string) ([]GalleryItem, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery`
	args := []interface{}{}
	if category = strings.TrimSpace(category); category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY sort_order ASC, created_at ASC`
	rows := []models.GalleryRow{}
	if err := s.gw.Select(ctx, &rows, query, args...); err != nil {
		return nil, ErrPersistence("Internal server error", err)
	}
	items := make([]GalleryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapGalleryItem(row))
	}
	return items, nil
}

func (s *GalleryStore) Get(ctx context.Context, id string) (GalleryItem, error) {
	row := models.GalleryRow{}
	if err := s.gw.Get(ctx, &row, `SELECT `+galleryColumns+` FROM gallery WHERE id = ?`, id); err != nil {
		if db.IsNotFound(err) {
			return GalleryItem{}, ErrNotFound("Gallery item not found")
		}
		return GalleryItem{}, ErrPersistence("Internal server error", err)
	}
	return mapGalleryItem(row), nil
}

func (s *GalleryStore) Create(ctx context.Context, item GalleryItem) (string, error) {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return "", ErrBadRequest("Title is required")
	}
	id := strings.TrimSpace(item.ID)
	if id == "" {
		id = ShortID()
	}
	order, err := nextSortOrder(ctx, s.gw, galleryTable)
	if err != nil {
		return "", ErrPersistence("Could not save gallery item", err)
	}
	item.ID, item.Title, item.SortOrder = id, title, order
	_, err = s.gw.Exec(ctx, galleryInsert, galleryArgs(item, now())...)
	if err != nil {
		return "", ErrPersistence("Could not save gallery item", err)
	}
	s.events.Publish(EntityGallery, ActionCreated, id)
	return id, nil
}

func (s *GalleryStore) Update(ctx context.Context, id string, body map[string]json.RawMessage) error {
	if err := updateRow(ctx, s.gw, galleryTable, "id", id, galleryFields, body, nil, "gallery item"); err != nil {
		return err
	}
	s.events.Publish(EntityGallery, ActionUpdated, id)
	return nil
}

func (s *GalleryStore) Delete(ctx context.Context, id string) error {
	if err := deleteRow(ctx, s.gw, galleryTable, "id", id, "gallery item"); err != nil {
		return err
	}
	s.events.Publish(EntityGallery, ActionDeleted, id)
	return nil
}

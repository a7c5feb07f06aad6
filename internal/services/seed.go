package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tailscale/hujson"

	"sitecms-backend-go/internal/db"
)

//go:embed fixtures/seed.jsonc
var defaultFixtures []byte

// Fixtures is the initial content written by the seed loader.
type Fixtures struct {
	Settings map[string]string `json:"settings"`
	Services []Service         `json:"services"`
	Projects []Project         `json:"projects"`
	Gallery  []GalleryItem     `json:"gallery"`
	Blog     []BlogPost        `json:"blog"`
}

// ParseFixtures reads a JSONC fixture document. Comments and trailing commas
// are allowed.
func ParseFixtures(data []byte) (Fixtures, error) {
	var fixtures Fixtures
	standard, err := hujson.Standardize(data)
	if err != nil {
		return fixtures, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := json.Unmarshal(standard, &fixtures); err != nil {
		return fixtures, fmt.Errorf("decode fixtures: %w", err)
	}
	return fixtures, nil
}

// DefaultFixtures returns the built-in seed content.
func DefaultFixtures() (Fixtures, error) {
	return ParseFixtures(defaultFixtures)
}

type Seeder struct {
	gw              *db.Gateway
	events          *EventHub
	fixtures        Fixtures
	defaultLocation string
}

func NewSeeder(gw *db.Gateway, events *EventHub, fixtures Fixtures, defaultLocation string) *Seeder {
	return &Seeder{gw: gw, events: events, fixtures: fixtures, defaultLocation: defaultLocation}
}

// Seed fills every empty content table from the fixtures. Tables that already
// hold rows are left untouched, so running it twice is harmless. Each table
// is written in its own transaction. The result maps table name to the number
// of rows inserted.
func (s *Seeder) Seed(ctx context.Context) (map[string]int, error) {
	counts := map[string]int{}
	stamp := now()
	plans := []struct {
		table  string
		entity string
		stmts  []db.Statement
	}{
		{blogTable, EntityBlog, s.blogStatements(stamp)},
		{serviceTable, EntityService, s.serviceStatements(stamp)},
		{projectTable, EntityProject, s.projectStatements(stamp)},
		{galleryTable, EntityGallery, s.galleryStatements(stamp)},
		{"site_settings", EntitySettings, s.settingStatements(stamp)},
	}
	for _, plan := range plans {
		existing, err := countRows(ctx, s.gw, plan.table)
		if err != nil {
			return nil, ErrPersistence("Could not seed "+plan.table, err)
		}
		if existing > 0 || len(plan.stmts) == 0 {
			counts[plan.table] = 0
			continue
		}
		if err := s.gw.Batch(ctx, plan.stmts); err != nil {
			return nil, ErrPersistence("Could not seed "+plan.table, err)
		}
		counts[plan.table] = len(plan.stmts)
		logrus.WithFields(logrus.Fields{"table": plan.table, "rows": len(plan.stmts)}).Info("seeded table")
		s.events.Publish(plan.entity, ActionSeeded, "")
	}
	return counts, nil
}

func seedStatus(raw string) string {
	status, err := normalizeStatus(raw)
	if err != nil {
		return StatusDraft
	}
	return status
}

func (s *Seeder) blogStatements(stamp string) []db.Statement {
	stmts := make([]db.Statement, 0, len(s.fixtures.Blog))
	for _, post := range s.fixtures.Blog {
		post.Slug = Slugify(strings.TrimSpace(post.Slug))
		if post.Slug == "" {
			post.Slug = SlugOrID(post.Title)
		}
		post.Status = seedStatus(post.Status)
		if strings.TrimSpace(post.Date) == "" {
			post.Date = today()
		}
		stmts = append(stmts, db.Statement{Query: blogInsert, Args: blogArgs(post, stamp)})
	}
	return stmts
}

func (s *Seeder) serviceStatements(stamp string) []db.Statement {
	stmts := make([]db.Statement, 0, len(s.fixtures.Services))
	for i, item := range s.fixtures.Services {
		if item.ID == "" {
			item.ID = ShortID()
		}
		if item.Slug == "" {
			item.Slug = SlugOrID(item.Title)
		}
		item.Status = seedStatus(item.Status)
		item.SortOrder = i + 1
		stmts = append(stmts, db.Statement{Query: serviceInsert, Args: serviceArgs(item, stamp)})
	}
	return stmts
}

func (s *Seeder) projectStatements(stamp string) []db.Statement {
	stmts := make([]db.Statement, 0, len(s.fixtures.Projects))
	for i, item := range s.fixtures.Projects {
		if item.ID == "" {
			item.ID = ShortID()
		}
		if item.Slug == "" {
			item.Slug = SlugOrID(item.Title)
		}
		if item.Location == "" {
			item.Location = s.defaultLocation
		}
		item.Status = seedStatus(item.Status)
		item.SortOrder = i + 1
		stmts = append(stmts, db.Statement{Query: projectInsert, Args: projectArgs(item, stamp)})
	}
	return stmts
}

func (s *Seeder) galleryStatements(stamp string) []db.Statement {
	stmts := make([]db.Statement, 0, len(s.fixtures.Gallery))
	for i, item := range s.fixtures.Gallery {
		if item.ID == "" {
			item.ID = ShortID()
		}
		item.SortOrder = i + 1
		stmts = append(stmts, db.Statement{Query: galleryInsert, Args: galleryArgs(item, stamp)})
	}
	return stmts
}

func (s *Seeder) settingStatements(stamp string) []db.Statement {
	stmts := []db.Statement{}
	for _, key := range AllowedSettingKeys() {
		value, ok := s.fixtures.Settings[key]
		if !ok {
			continue
		}
		stmts = append(stmts, db.Statement{Query: upsertSetting, Args: []interface{}{key, value, stamp}})
	}
	return stmts
}

package services

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFixturesParse(t *testing.T) {
	fixtures, err := DefaultFixtures()
	require.NoError(t, err)
	assert.Len(t, fixtures.Services, 3)
	assert.Len(t, fixtures.Projects, 2)
	assert.Len(t, fixtures.Gallery, 3)
	assert.Len(t, fixtures.Blog, 2)
	assert.Len(t, fixtures.Settings, 5)
}

func TestParseFixturesAcceptsComments(t *testing.T) {
	fixtures, err := ParseFixtures([]byte(`{
  // only settings
  "settings": {"phone": "1",},
}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"phone": "1"}, fixtures.Settings)

	_, err = ParseFixtures([]byte(`{"settings": `))
	assert.Error(t, err)
}

func TestSeedFillsEmptyTablesOnce(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(t)
	fixtures, err := DefaultFixtures()
	require.NoError(t, err)
	seeder := NewSeeder(gw, nil, fixtures, "Athens")

	counts, err := seeder.Seed(ctx)
	require.NoError(t, err)
	want := map[string]int{"blog_posts": 2, "services": 3, "projects": 2, "gallery": 3, "site_settings": 5}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("first seed counts (-want +got):\n%s", diff)
	}

	again, err := seeder.Seed(ctx)
	require.NoError(t, err)
	zero := map[string]int{"blog_posts": 0, "services": 0, "projects": 0, "gallery": 0, "site_settings": 0}
	if diff := cmp.Diff(zero, again); diff != "" {
		t.Fatalf("second seed counts (-want +got):\n%s", diff)
	}

	projects, err := NewProjectStore(gw, nil, "Athens").List(ctx, "")
	require.NoError(t, err)
	locations := []string{}
	for _, p := range projects {
		locations = append(locations, p.Location)
	}
	if diff := cmp.Diff([]string{"Athens", "Glyfada"}, locations); diff != "" {
		t.Fatalf("project locations (-want +got):\n%s", diff)
	}

	services, err := NewServiceStore(gw, nil).List(ctx, "")
	require.NoError(t, err)
	require.Len(t, services, 3)
	assert.Equal(t, "kitchens", services[0].ID)
	assert.Equal(t, 3, services[2].SortOrder)
	require.NotNil(t, services[2].MediaType)
}

func TestSeedSkipsPopulatedTables(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(t)
	_, err := NewBlogStore(gw, nil).Create(ctx, BlogPost{Slug: "existing", Title: "Existing"})
	require.NoError(t, err)

	fixtures, err := DefaultFixtures()
	require.NoError(t, err)
	counts, err := NewSeeder(gw, nil, fixtures, "Athens").Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts["blog_posts"])
	assert.Equal(t, 3, counts["services"])

	posts, err := NewBlogStore(gw, nil).List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestSeedStatusFallsBackToDraft(t *testing.T) {
	assert.Equal(t, StatusDraft, seedStatus("archived"))
	assert.Equal(t, StatusPublished, seedStatus("Published"))
	assert.Equal(t, StatusDraft, seedStatus(""))
}

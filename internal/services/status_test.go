package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCaptureCountsRows(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(t)
	_, err := NewGalleryStore(gw, nil).Create(ctx, GalleryItem{Title: "A"})
	require.NoError(t, err)

	hub := NewEventHub()
	hub.Add(&recordingConn{})
	snapshot, err := NewStatusReporter(gw, hub, t.TempDir(), true, false).Capture(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, snapshot.Rows["gallery"])
	assert.Equal(t, 0, snapshot.Rows["blog_posts"])
	assert.Len(t, snapshot.Rows, len(statusTables))
	assert.Equal(t, 1, snapshot.EventClients)
	assert.True(t, snapshot.AIEnabled)
	assert.False(t, snapshot.CDNEnabled)
	assert.False(t, snapshot.CapturedAt.IsZero())
}

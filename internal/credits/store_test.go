package credits

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puzzleassets/pkg/database"
	"puzzleassets/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "catalog.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func TestRunLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	none, err := s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	first, err := s.BeginRun(ctx, "samples")
	require.NoError(t, err)
	require.NoError(t, s.FinishRun(ctx, first, 48, 0))

	clock = clock.Add(time.Minute)
	id, err := s.BeginRun(ctx, "fetch")
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	run, err := s.LatestRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, id, run.ID)
	assert.True(t, run.FinishedAt.IsZero())

	clock = clock.Add(time.Minute)
	require.NoError(t, s.FinishRun(ctx, id, 40, 8))

	run, err = s.LatestRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "fetch", run.Mode)
	assert.Equal(t, 40, run.Acquired)
	assert.Equal(t, 8, run.Failed)
	assert.True(t, run.StartedAt.Equal(time.Date(2026, 3, 1, 10, 1, 0, 0, time.UTC)))
	assert.False(t, run.FinishedAt.IsZero())

	assert.Error(t, s.FinishRun(ctx, "no-such-run", 0, 0))
}

func TestSaveImagesUpsertsAndExports(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.BeginRun(ctx, "fetch")
	require.NoError(t, err)

	require.NoError(t, s.SaveImages(ctx, run, []Image{
		{ID: "nature-01", Category: "nature", Filename: "nature-01.jpg", Record: models.ImageRecord{URL: "https://a", Photographer: "Ana", Title: "Falls", Source: models.SourceUnsplash}},
		{ID: "art-00", Category: "art", Filename: "art-00.jpg", Record: models.ImageRecord{Source: models.SourceSample}},
	}))
	require.NoError(t, s.SaveImages(ctx, run, []Image{
		{ID: "nature-01", Category: "nature", Filename: "nature-01.jpg", Record: models.ImageRecord{URL: "https://b", Photographer: "Bo", Title: "Lake", Source: models.SourcePexels}},
	}))

	images, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "art-00", images[0].ID)
	assert.Equal(t, "Bo", images[1].Record.Photographer)
	assert.Equal(t, models.SourcePexels, images[1].Record.Source)

	var buf bytes.Buffer
	n, err := s.ExportCSV(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,category,filename,title,photographer,source,url", lines[0])
	assert.Equal(t, "art-00,art,art-00.jpg,,,sample,", lines[1])
	assert.Equal(t, "nature-01,nature,nature-01.jpg,Lake,Bo,pexels,https://b", lines[2])
}

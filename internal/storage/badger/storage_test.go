package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/speculum/internal/common"
	"github.com/ternarybob/speculum/internal/interfaces"
	"github.com/ternarybob/speculum/internal/models"
)

func testManager(t *testing.T) interfaces.StorageManager {
	t.Helper()

	manager, err := NewManager(common.GetLogger(), &common.BadgerConfig{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	return manager
}

func TestSnapshotRoundTrip(t *testing.T) {
	manager := testManager(t)
	storage := manager.SnapshotStorage()
	ctx := context.Background()

	snapshot := &models.CrawlSnapshot{
		ID:          common.NewSnapshotID(),
		Site:        "https://example.com/",
		GeneratedAt: time.Now().UTC(),
		Pages: []models.PageRecord{
			{URL: "https://example.com/", PageType: models.PageTypeHomepage, Priority: 1.00},
		},
		XML:      "<urlset/>",
		Markdown: "# mirror",
	}

	require.NoError(t, storage.StoreSnapshot(ctx, snapshot))

	loaded, err := storage.GetSnapshot(ctx, snapshot.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, snapshot.Site, loaded.Site)
	assert.Len(t, loaded.Pages, 1)

	count, err := storage.CountSnapshots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSnapshotGetMissing(t *testing.T) {
	manager := testManager(t)

	loaded, err := manager.SnapshotStorage().GetSnapshot(context.Background(), "snap_missing")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSnapshotLatestBySite(t *testing.T) {
	manager := testManager(t)
	storage := manager.SnapshotStorage()
	ctx := context.Background()

	older := &models.CrawlSnapshot{
		ID:        common.NewSnapshotID(),
		Site:      "https://example.com/",
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	newer := &models.CrawlSnapshot{
		ID:        common.NewSnapshotID(),
		Site:      "https://example.com/",
		CreatedAt: time.Now().UTC(),
	}
	other := &models.CrawlSnapshot{
		ID:        common.NewSnapshotID(),
		Site:      "https://other.com/",
		CreatedAt: time.Now().UTC().Add(time.Hour),
	}

	require.NoError(t, storage.StoreSnapshot(ctx, older))
	require.NoError(t, storage.StoreSnapshot(ctx, newer))
	require.NoError(t, storage.StoreSnapshot(ctx, other))

	latest, err := storage.GetLatestBySite(ctx, "https://example.com/")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, newer.ID, latest.ID)
}

func TestDocumentUpsertDeduplicatesByURL(t *testing.T) {
	manager := testManager(t)
	storage := manager.DocumentStorage()
	ctx := context.Background()

	first := &models.MirrorDocument{
		ID:    common.NewDocumentID(),
		URL:   "https://example.com/page",
		Title: "v1",
	}
	require.NoError(t, storage.UpsertDocument(ctx, first))

	second := &models.MirrorDocument{
		ID:    common.NewDocumentID(),
		URL:   "https://example.com/page",
		Title: "v2",
	}
	require.NoError(t, storage.UpsertDocument(ctx, second))

	count, err := storage.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	loaded, err := storage.GetDocumentByURL(ctx, "https://example.com/page")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, first.ID, loaded.ID, "upsert keeps the original document ID")
	assert.Equal(t, "v2", loaded.Title)
}

func TestDocumentDelete(t *testing.T) {
	manager := testManager(t)
	storage := manager.DocumentStorage()
	ctx := context.Background()

	doc := &models.MirrorDocument{ID: common.NewDocumentID(), URL: "https://example.com/x"}
	require.NoError(t, storage.UpsertDocument(ctx, doc))
	require.NoError(t, storage.DeleteDocument(ctx, doc.ID))

	loaded, err := storage.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting an absent document is not an error
	assert.NoError(t, storage.DeleteDocument(ctx, doc.ID))
}

func TestKVRoundTrip(t *testing.T) {
	manager := testManager(t)
	kv := manager.KVStorage()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "robots:example.com", []byte("User-agent: *")))

	value, err := kv.Get(ctx, "robots:example.com")
	require.NoError(t, err)
	assert.Equal(t, []byte("User-agent: *"), value)

	missing, err := kv.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, kv.Delete(ctx, "robots:example.com"))
	value, err = kv.Get(ctx, "robots:example.com")
	require.NoError(t, err)
	assert.Nil(t, value)
}

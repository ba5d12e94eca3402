package interfaces

import (
	"context"

	"github.com/ternarybob/speculum/internal/models"
)

// SnapshotStorage - interface for crawl snapshot persistence
type SnapshotStorage interface {
	StoreSnapshot(ctx context.Context, snapshot *models.CrawlSnapshot) error
	GetSnapshot(ctx context.Context, id string) (*models.CrawlSnapshot, error)
	GetLatestBySite(ctx context.Context, site string) (*models.CrawlSnapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]*models.CrawlSnapshot, error)
	DeleteSnapshot(ctx context.Context, id string) error
	CountSnapshots(ctx context.Context) (int, error)
}

// DocumentStorage - interface for mirror document persistence
type DocumentStorage interface {
	// UpsertDocument stores the document, replacing any existing entry
	// keyed on the same URL.
	UpsertDocument(ctx context.Context, doc *models.MirrorDocument) error
	GetDocument(ctx context.Context, id string) (*models.MirrorDocument, error)
	GetDocumentByURL(ctx context.Context, url string) (*models.MirrorDocument, error)
	ListDocuments(ctx context.Context, limit int) ([]*models.MirrorDocument, error)
	DeleteDocument(ctx context.Context, id string) error
	CountDocuments(ctx context.Context) (int, error)
}

// KVStorage - interface for small operational values (robots cache etc.)
type KVStorage interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	SnapshotStorage() SnapshotStorage
	DocumentStorage() DocumentStorage
	KVStorage() KVStorage
	Close() error
}

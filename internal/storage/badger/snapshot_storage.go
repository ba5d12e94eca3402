package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/speculum/internal/interfaces"
	"github.com/ternarybob/speculum/internal/models"
)

// SnapshotStorage persists crawl snapshots in Badger
type SnapshotStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSnapshotStorage creates snapshot storage backed by Badger
func NewSnapshotStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SnapshotStorage {
	return &SnapshotStorage{db: db, logger: logger}
}

// StoreSnapshot persists a crawl snapshot
func (s *SnapshotStorage) StoreSnapshot(ctx context.Context, snapshot *models.CrawlSnapshot) error {
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	if err := s.db.Store().Upsert(snapshot.ID, snapshot); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	s.logger.Debug().
		Str("id", snapshot.ID).
		Str("site", snapshot.Site).
		Int("pages", len(snapshot.Pages)).
		Msg("Snapshot stored")

	return nil
}

// GetSnapshot retrieves a snapshot by ID. Returns nil when not found.
func (s *SnapshotStorage) GetSnapshot(ctx context.Context, id string) (*models.CrawlSnapshot, error) {
	var snapshot models.CrawlSnapshot
	err := s.db.Store().Get(id, &snapshot)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return &snapshot, nil
}

// GetLatestBySite returns the most recent snapshot for a site, or nil
func (s *SnapshotStorage) GetLatestBySite(ctx context.Context, site string) (*models.CrawlSnapshot, error) {
	var snapshots []models.CrawlSnapshot
	query := badgerhold.Where("Site").Eq(site).SortBy("CreatedAt").Reverse().Limit(1)
	if err := s.db.Store().Find(&snapshots, query); err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		return nil, nil
	}
	return &snapshots[0], nil
}

// ListSnapshots returns snapshots ordered newest first
func (s *SnapshotStorage) ListSnapshots(ctx context.Context, limit int) ([]*models.CrawlSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	var snapshots []models.CrawlSnapshot
	query := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse().Limit(limit)
	if err := s.db.Store().Find(&snapshots, query); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	result := make([]*models.CrawlSnapshot, len(snapshots))
	for i := range snapshots {
		result[i] = &snapshots[i]
	}
	return result, nil
}

// DeleteSnapshot removes a snapshot by ID
func (s *SnapshotStorage) DeleteSnapshot(ctx context.Context, id string) error {
	err := s.db.Store().Delete(id, &models.CrawlSnapshot{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// CountSnapshots returns the total snapshot count
func (s *SnapshotStorage) CountSnapshots(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.CrawlSnapshot{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return int(count), nil
}

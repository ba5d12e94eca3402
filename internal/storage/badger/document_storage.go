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

// DocumentStorage persists mirror documents in Badger
type DocumentStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewDocumentStorage creates mirror document storage backed by Badger
func NewDocumentStorage(db *BadgerDB, logger arbor.ILogger) interfaces.DocumentStorage {
	return &DocumentStorage{db: db, logger: logger}
}

// UpsertDocument stores the document, replacing any existing entry
// keyed on the same URL so repeated extractions stay deduplicated.
func (s *DocumentStorage) UpsertDocument(ctx context.Context, doc *models.MirrorDocument) error {
	now := time.Now().UTC()

	existing, err := s.GetDocumentByURL(ctx, doc.URL)
	if err != nil {
		return err
	}
	if existing != nil {
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	if err := s.db.Store().Upsert(doc.ID, doc); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}

	s.logger.Debug().Str("id", doc.ID).Str("url", doc.URL).Msg("Mirror document stored")
	return nil
}

// GetDocument retrieves a document by ID. Returns nil when not found.
func (s *DocumentStorage) GetDocument(ctx context.Context, id string) (*models.MirrorDocument, error) {
	var doc models.MirrorDocument
	err := s.db.Store().Get(id, &doc)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

// GetDocumentByURL retrieves a document by source URL, or nil
func (s *DocumentStorage) GetDocumentByURL(ctx context.Context, url string) (*models.MirrorDocument, error) {
	var docs []models.MirrorDocument
	if err := s.db.Store().Find(&docs, badgerhold.Where("URL").Eq(url).Limit(1)); err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

// ListDocuments returns documents ordered newest first
func (s *DocumentStorage) ListDocuments(ctx context.Context, limit int) ([]*models.MirrorDocument, error) {
	if limit <= 0 {
		limit = 50
	}

	var docs []models.MirrorDocument
	query := badgerhold.Where("ID").Ne("").SortBy("UpdatedAt").Reverse().Limit(limit)
	if err := s.db.Store().Find(&docs, query); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	result := make([]*models.MirrorDocument, len(docs))
	for i := range docs {
		result[i] = &docs[i]
	}
	return result, nil
}

// DeleteDocument removes a document by ID
func (s *DocumentStorage) DeleteDocument(ctx context.Context, id string) error {
	err := s.db.Store().Delete(id, &models.MirrorDocument{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// CountDocuments returns the total document count
func (s *DocumentStorage) CountDocuments(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.MirrorDocument{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return int(count), nil
}

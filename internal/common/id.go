package common

import (
	"github.com/google/uuid"
)

// NewSnapshotID generates a unique crawl snapshot ID with the "snap_" prefix
// Format: snap_<uuid>
func NewSnapshotID() string {
	return "snap_" + uuid.New().String()
}

// NewDocumentID generates a unique mirror document ID with the "doc_" prefix
// Format: doc_<uuid>
func NewDocumentID() string {
	return "doc_" + uuid.New().String()
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/speculum/internal/interfaces"
)

// SnapshotHandler handles stored crawl snapshot HTTP requests
type SnapshotHandler struct {
	snapshots interfaces.SnapshotStorage
	logger    arbor.ILogger
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(snapshots interfaces.SnapshotStorage, logger arbor.ILogger) *SnapshotHandler {
	return &SnapshotHandler{
		snapshots: snapshots,
		logger:    logger,
	}
}

// ListSnapshotsHandler handles GET /api/snapshots - lists stored snapshots.
// With ?site=... it returns only the latest snapshot for that site.
func (h *SnapshotHandler) ListSnapshotsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	if site := r.URL.Query().Get("site"); site != "" {
		snapshot, err := h.snapshots.GetLatestBySite(r.Context(), site)
		if err != nil {
			h.logger.Error().Err(err).Str("site", site).Msg("Failed to load latest snapshot")
			WriteError(w, http.StatusInternalServerError, "Failed to load latest snapshot")
			return
		}
		if snapshot == nil {
			WriteError(w, http.StatusNotFound, "No snapshot found for site")
			return
		}
		WriteJSON(w, http.StatusOK, snapshot)
		return
	}

	_, pageSize := GetPaginationParams(r)

	snapshots, err := h.snapshots.ListSnapshots(r.Context(), pageSize)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list snapshots")
		WriteError(w, http.StatusInternalServerError, "Failed to list snapshots")
		return
	}

	h.logger.Debug().Int("count", len(snapshots)).Msg("Listed snapshots")
	WriteJSON(w, http.StatusOK, snapshots)
}

// GetSnapshotHandler handles GET /api/snapshots/{id} and
// DELETE /api/snapshots/{id}.
func (h *SnapshotHandler) GetSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/snapshots/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Missing snapshot id")
		return
	}

	switch r.Method {
	case "GET":
		snapshot, err := h.snapshots.GetSnapshot(r.Context(), id)
		if err != nil {
			h.logger.Error().Err(err).Str("id", id).Msg("Failed to load snapshot")
			WriteError(w, http.StatusInternalServerError, "Failed to load snapshot")
			return
		}
		if snapshot == nil {
			WriteError(w, http.StatusNotFound, "Snapshot not found")
			return
		}
		WriteJSON(w, http.StatusOK, snapshot)

	case "DELETE":
		if err := h.snapshots.DeleteSnapshot(r.Context(), id); err != nil {
			h.logger.Error().Err(err).Str("id", id).Msg("Failed to delete snapshot")
			WriteError(w, http.StatusInternalServerError, "Failed to delete snapshot")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{
			"status": "success",
			"id":     id,
		})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

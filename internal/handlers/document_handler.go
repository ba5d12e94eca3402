package handlers

import (
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/speculum/internal/interfaces"
)

// DocumentHandler handles stored mirror document HTTP requests
type DocumentHandler struct {
	documents interfaces.DocumentStorage
	logger    arbor.ILogger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documents interfaces.DocumentStorage, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		logger:    logger,
	}
}

// ListDocumentsHandler handles GET /api/documents - lists stored mirror
// documents, most recently updated first. With ?url=... it returns the
// single document for that URL.
func (h *DocumentHandler) ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	if url := r.URL.Query().Get("url"); url != "" {
		doc, err := h.documents.GetDocumentByURL(r.Context(), url)
		if err != nil {
			h.logger.Error().Err(err).Str("url", url).Msg("Failed to load document")
			WriteError(w, http.StatusInternalServerError, "Failed to load document")
			return
		}
		if doc == nil {
			WriteError(w, http.StatusNotFound, "No document found for url")
			return
		}
		WriteJSON(w, http.StatusOK, doc)
		return
	}

	_, pageSize := GetPaginationParams(r)

	docs, err := h.documents.ListDocuments(r.Context(), pageSize)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list documents")
		WriteError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	h.logger.Debug().Int("count", len(docs)).Msg("Listed documents")
	WriteJSON(w, http.StatusOK, docs)
}

// GetDocumentHandler handles GET /api/documents/{id} and
// DELETE /api/documents/{id}.
func (h *DocumentHandler) GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/documents/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Missing document id")
		return
	}

	switch r.Method {
	case "GET":
		doc, err := h.documents.GetDocument(r.Context(), id)
		if err != nil {
			h.logger.Error().Err(err).Str("id", id).Msg("Failed to load document")
			WriteError(w, http.StatusInternalServerError, "Failed to load document")
			return
		}
		if doc == nil {
			WriteError(w, http.StatusNotFound, "Document not found")
			return
		}
		WriteJSON(w, http.StatusOK, doc)

	case "DELETE":
		if err := h.documents.DeleteDocument(r.Context(), id); err != nil {
			h.logger.Error().Err(err).Str("id", id).Msg("Failed to delete document")
			WriteError(w, http.StatusInternalServerError, "Failed to delete document")
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

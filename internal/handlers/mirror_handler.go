package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/speculum/internal/common"
	"github.com/ternarybob/speculum/internal/interfaces"
	"github.com/ternarybob/speculum/internal/models"
	"github.com/ternarybob/speculum/internal/services/markdown"
	"github.com/ternarybob/speculum/internal/services/mirror"
)

// MirrorHandler handles single-page mirror extraction HTTP requests
type MirrorHandler struct {
	mirrorService interfaces.MirrorService
	documents     interfaces.DocumentStorage
	logger        arbor.ILogger
}

// NewMirrorHandler creates a new mirror handler
func NewMirrorHandler(mirrorService interfaces.MirrorService, documents interfaces.DocumentStorage, logger arbor.ILogger) *MirrorHandler {
	return &MirrorHandler{
		mirrorService: mirrorService,
		documents:     documents,
		logger:        logger,
	}
}

// ExtractHandler handles GET /api/mirror?url=...&format=md|mdf
// Returns the extracted page as a markdown document.
func (h *MirrorHandler) ExtractHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		WriteError(w, http.StatusBadRequest, "Missing url parameter")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "md"
	}
	if format != "md" && format != "mdf" {
		WriteError(w, http.StatusBadRequest, "Invalid format: must be md or mdf")
		return
	}

	result, err := h.mirrorService.Extract(r.Context(), pageURL)
	if err != nil {
		h.logger.Warn().Err(err).Str("url", pageURL).Msg("Mirror extraction failed")
		WriteServiceError(w, err)
		return
	}

	h.storeDocument(r, result)

	var body string
	if format == "mdf" {
		body = mirror.RenderMDF(result)
	} else {
		body = mirror.RenderFrontMatter(result, time.Now().UTC())
	}

	WriteRaw(w, http.StatusOK, "text/markdown", body)
}

// ContentResponse pairs the structured mirror content with its
// structure analysis.
type ContentResponse struct {
	Content  *models.MirrorContent     `json:"content"`
	Analysis *models.StructureAnalysis `json:"analysis"`
}

// ContentHandler handles GET /api/mirror/content?url=...
// Returns the structured mirror content plus a health analysis of the
// generated markdown.
func (h *MirrorHandler) ContentHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		WriteError(w, http.StatusBadRequest, "Missing url parameter")
		return
	}

	result, err := h.mirrorService.Extract(r.Context(), pageURL)
	if err != nil {
		h.logger.Warn().Err(err).Str("url", pageURL).Msg("Mirror extraction failed")
		WriteServiceError(w, err)
		return
	}

	h.storeDocument(r, result)

	content, err := h.mirrorService.BuildContent(result)
	if err != nil {
		h.logger.Error().Err(err).Str("url", pageURL).Msg("Failed to build mirror content")
		WriteServiceError(w, err)
		return
	}

	analysis := markdown.Analyze(mirror.RenderFrontMatter(result, time.Now().UTC()))

	WriteJSON(w, http.StatusOK, ContentResponse{
		Content:  content,
		Analysis: analysis,
	})
}

// storeDocument persists the extraction as a mirror document.
// Persistence failures are logged but do not fail the request.
func (h *MirrorHandler) storeDocument(r *http.Request, result *models.ExtractionResult) {
	if h.documents == nil {
		return
	}

	now := time.Now().UTC()
	doc := &models.MirrorDocument{
		ID:        common.NewDocumentID(),
		URL:       result.URL,
		Canonical: result.Canonical,
		Title:     result.Title,
		Markdown:  result.Markdown,
		Metadata:  result.Metadata,
		FetchedAt: now,
	}

	if err := h.documents.UpsertDocument(r.Context(), doc); err != nil {
		h.logger.Warn().Err(err).Str("url", result.URL).Msg("Failed to store mirror document")
		return
	}

	h.logger.Debug().Str("url", doc.URL).Msg("Stored mirror document")
}

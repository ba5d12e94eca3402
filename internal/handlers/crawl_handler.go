package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/speculum/internal/common"
	"github.com/ternarybob/speculum/internal/interfaces"
	"github.com/ternarybob/speculum/internal/models"
)

// CrawlHandler handles crawl invocation HTTP requests
type CrawlHandler struct {
	crawlService interfaces.CrawlService
	snapshots    interfaces.SnapshotStorage
	config       *common.Config
	validate     *validator.Validate
	logger       arbor.ILogger
}

// NewCrawlHandler creates a new crawl handler
func NewCrawlHandler(crawlService interfaces.CrawlService, snapshots interfaces.SnapshotStorage, config *common.Config, logger arbor.ILogger) *CrawlHandler {
	return &CrawlHandler{
		crawlService: crawlService,
		snapshots:    snapshots,
		config:       config,
		validate:     validator.New(),
		logger:       logger,
	}
}

// CrawlHandler handles POST /api/crawl - runs a bounded crawl of one site
func (h *CrawlHandler) CrawlHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req models.CrawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.logger.Warn().Err(err).Msg("Crawl request failed validation")
		WriteError(w, http.StatusBadRequest, "Invalid crawl request: "+err.Error())
		return
	}

	maxDepth := req.ClampDepth(h.config.Crawler.MaxDepth)

	h.logger.Info().
		Str("url", req.URL).
		Int("max_depth", maxDepth).
		Str("format", req.Format).
		Msg("Starting crawl")

	result, err := h.crawlService.Crawl(r.Context(), req.URL, maxDepth)
	if err != nil {
		h.logger.Error().Err(err).Str("url", req.URL).Msg("Crawl failed")
		WriteServiceError(w, err)
		return
	}

	h.storeSnapshot(r, result)

	switch req.Format {
	case "xml":
		WriteRaw(w, http.StatusOK, "application/xml", result.XML)
	case "md":
		WriteRaw(w, http.StatusOK, "text/markdown", result.Markdown)
	default:
		WriteJSON(w, http.StatusOK, result)
	}
}

// storeSnapshot persists the crawl result. Persistence failures are
// logged but do not fail the request.
func (h *CrawlHandler) storeSnapshot(r *http.Request, result *models.CrawlResult) {
	if h.snapshots == nil {
		return
	}

	generatedAt, err := time.Parse(time.RFC3339, result.GeneratedAt)
	if err != nil {
		generatedAt = time.Now().UTC()
	}

	snapshot := &models.CrawlSnapshot{
		ID:          common.NewSnapshotID(),
		Site:        result.Site,
		GeneratedAt: generatedAt,
		Pages:       result.Pages,
		XML:         result.XML,
		Markdown:    result.Markdown,
	}

	if err := h.snapshots.StoreSnapshot(r.Context(), snapshot); err != nil {
		h.logger.Warn().Err(err).Str("site", result.Site).Msg("Failed to store crawl snapshot")
		return
	}

	h.logger.Debug().
		Str("snapshot_id", snapshot.ID).
		Str("site", snapshot.Site).
		Int("pages", len(snapshot.Pages)).
		Msg("Stored crawl snapshot")
}

package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Crawling
	mux.HandleFunc("/api/crawl", s.app.CrawlHandler.CrawlHandler) // POST - run a bounded crawl

	// API routes - Mirror extraction
	mux.HandleFunc("/api/mirror", s.app.MirrorHandler.ExtractHandler)         // GET ?url=&format=md|mdf
	mux.HandleFunc("/api/mirror/content", s.app.MirrorHandler.ContentHandler) // GET ?url=

	// API routes - Stored snapshots
	mux.HandleFunc("/api/snapshots", s.app.SnapshotHandler.ListSnapshotsHandler)
	mux.HandleFunc("/api/snapshots/", s.app.SnapshotHandler.GetSnapshotHandler) // GET/DELETE /{id}

	// API routes - Stored mirror documents
	mux.HandleFunc("/api/documents", s.app.DocumentHandler.ListDocumentsHandler)
	mux.HandleFunc("/api/documents/", s.app.DocumentHandler.GetDocumentHandler) // GET/DELETE /{id}

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/config", s.app.ConfigHandler.GetConfig)

	// Catch-all for unknown API paths
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/speculum/internal/common"
	"github.com/ternarybob/speculum/internal/interfaces"
	"github.com/ternarybob/speculum/internal/models"
)

// refreshTimeout bounds one full refresh cycle across all sites.
const refreshTimeout = 30 * time.Minute

// Service refreshes crawl snapshots for configured sites on a cron
// schedule. Sites are crawled sequentially; one failing site does not
// stop the others.
type Service struct {
	config       *common.Config
	crawlService interfaces.CrawlService
	snapshots    interfaces.SnapshotStorage
	kv           interfaces.KVStorage
	cron         *cron.Cron
	logger       arbor.ILogger
	mu           sync.Mutex // Prevents overlapping refresh cycles
	running      bool
}

// NewService creates a new scheduler service
func NewService(config *common.Config, crawlService interfaces.CrawlService, snapshots interfaces.SnapshotStorage, kv interfaces.KVStorage, logger arbor.ILogger) interfaces.SchedulerService {
	return &Service{
		config:       config,
		crawlService: crawlService,
		snapshots:    snapshots,
		kv:           kv,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger,
	}
}

// Start begins the scheduler with the configured cron expression
func (s *Service) Start() error {
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if !s.config.Scheduler.Enabled {
		s.logger.Info().Msg("Scheduler disabled")
		return nil
	}

	if len(s.config.Scheduler.Sites) == 0 {
		s.logger.Warn().Msg("Scheduler enabled but no sites configured")
		return nil
	}

	schedule := s.config.Scheduler.Schedule
	if schedule == "" {
		schedule = "0 0 */6 * * *" // Every 6 hours
	}

	if _, err := s.cron.AddFunc(schedule, s.refreshAll); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("schedule", schedule).
		Int("sites", len(s.config.Scheduler.Sites)).
		Msg("Scheduler started")

	return nil
}

// Stop halts the scheduler and waits for a running refresh to finish
func (s *Service) Stop() {
	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false

	s.logger.Info().Msg("Scheduler stopped")
}

// refreshAll crawls every configured site and stores a fresh snapshot
func (s *Service) refreshAll() {
	if !s.mu.TryLock() {
		s.logger.Warn().Msg("Previous refresh still running, skipping cycle")
		return
	}
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	for _, site := range s.config.Scheduler.Sites {
		if err := s.refreshSite(ctx, site); err != nil {
			s.logger.Warn().Err(err).Str("site", site).Msg("Scheduled refresh failed")
		}
	}
}

func (s *Service) refreshSite(ctx context.Context, site string) error {
	s.logger.Info().Str("site", site).Msg("Starting scheduled refresh")

	result, err := s.crawlService.Crawl(ctx, site, s.config.Scheduler.MaxDepth)
	if err != nil {
		return err
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

	if err := s.snapshots.StoreSnapshot(ctx, snapshot); err != nil {
		return err
	}

	if s.kv != nil {
		key := "refresh:last:" + result.Site
		if err := s.kv.Set(ctx, key, []byte(time.Now().UTC().Format(time.RFC3339))); err != nil {
			s.logger.Warn().Err(err).Str("site", result.Site).Msg("Failed to record refresh time")
		}
	}

	s.logger.Info().
		Str("site", result.Site).
		Str("snapshot_id", snapshot.ID).
		Int("pages", len(snapshot.Pages)).
		Msg("Scheduled refresh complete")

	return nil
}

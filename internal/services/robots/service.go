package robots

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/speculum/internal/common"
)

// maxRobotsSize caps the robots.txt body read
const maxRobotsSize = 512 * 1024

// Service fetches and parses robots.txt for crawl origins
type Service struct {
	client    *http.Client
	userAgent string
	logger    arbor.ILogger
}

// NewService creates a robots service with the given fetch settings
func NewService(userAgent string, timeout time.Duration) *Service {
	return &Service{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		logger:    common.GetLogger(),
	}
}

// Load fetches {origin}/robots.txt and parses it into a Checker. Any
// fetch failure or non-2xx status yields a permissive checker; robots
// absence is never a crawl-blocking error.
func (s *Service) Load(ctx context.Context, origin string) *Checker {
	robotsURL := origin + "/robots.txt"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		s.logger.Debug().Str("origin", origin).Err(err).Msg("Failed to build robots request, allowing all")
		return &Checker{}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Debug().Str("origin", origin).Err(err).Msg("Robots fetch failed, allowing all")
		return &Checker{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Debug().Str("origin", origin).Int("status", resp.StatusCode).Msg("Robots not available, allowing all")
		return &Checker{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		s.logger.Debug().Str("origin", origin).Err(err).Msg("Robots body read failed, allowing all")
		return &Checker{}
	}

	checker := Parse(string(body))
	s.logger.Debug().Str("origin", origin).Msg("Robots policy loaded")
	return checker
}

package config

import (
	"time"
)

// GetTimeout returns the per-request fetch timeout as time.Duration
func (s *SiteSettings) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.Timeout) * time.Second
}

package helpers

import (
	"time"

	"github.com/unpuzzleclub/backend/internal/pkg/logger"
)

// ParseDuration parses a duration string, returns the default on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		logger.Warn().Err(err).Str("duration", durationStr).Msg("Invalid duration string, using default")
		return defaultDuration
	}
	return duration
}

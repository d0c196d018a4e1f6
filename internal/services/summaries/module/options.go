package module

import (
	"time"

	"sellerbot/internal/platform/config"
)

// Options holds configuration settings for the summaries module
type Options struct {
	Model    string
	Template string
	CacheTTL time.Duration
}

// FromConfig reads SUMMARIES_* settings
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("SUMMARIES_")
	return Options{
		Model:    c.MayString("MODEL", ""),
		Template: c.MayString("TEMPLATE", ""),
		CacheTTL: c.MayDuration("CACHE_TTL", 24*time.Hour),
	}
}

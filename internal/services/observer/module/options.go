package module

import (
	"time"

	"sellerbot/internal/platform/config"
)

// Options holds configuration settings for the observer module
type Options struct {
	Model            string
	QuestionInterval time.Duration
	ReviewInterval   time.Duration
	ProbeLimit       int
	RingSize         int
	RestartDelay     time.Duration
	Publish          bool
	QuestionTemplate string
	ReviewTemplate   string
}

// FromConfig reads OBSERVER_* settings
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("OBSERVER_")
	return Options{
		Model:            c.MayString("MODEL", ""),
		QuestionInterval: c.MayDuration("QUESTION_INTERVAL", 11*time.Second),
		ReviewInterval:   c.MayDuration("REVIEW_INTERVAL", 7*time.Second),
		ProbeLimit:       c.MayInt("PROBE_LIMIT", 20),
		RingSize:         c.MayInt("RING_SIZE", 16),
		RestartDelay:     c.MayDuration("RESTART_DELAY", 5*time.Second),
		Publish:          c.MayBool("PUBLISH_ANSWERS", false),
		QuestionTemplate: c.MayString("QUESTION_TEMPLATE", ""),
		ReviewTemplate:   c.MayString("REVIEW_TEMPLATE", ""),
	}
}

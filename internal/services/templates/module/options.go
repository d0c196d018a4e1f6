package module

import "sellerbot/internal/platform/config"

// Options holds configuration settings for the templates module
type Options struct {
	WriteToken string
}

// FromConfig reads TEMPLATES_* settings
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("TEMPLATES_")
	return Options{WriteToken: c.MayString("WRITE_TOKEN", "")}
}

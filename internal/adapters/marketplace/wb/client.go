// Package wb is the Wildberries seller API adapter
package wb

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"sellerbot/internal/adapters/apiclient"
	"sellerbot/internal/adapters/marketplace"
	"sellerbot/internal/core/throttle"
	"sellerbot/internal/platform/config"
	perr "sellerbot/internal/platform/errors"
	"sellerbot/internal/platform/logger"
)

const (
	defaultFeedbacksURL = "https://feedbacks-api.wildberries.ru"
	defaultContentURL   = "https://content-api.wildberries.ru"
	defaultPricesURL    = "https://discounts-prices-api.wildberries.ru"
	defaultSlots        = 4
	defaultPause        = 500 * time.Millisecond
	defaultTimeout      = 5 * time.Second

	// server side caps for take
	questionMaxLimit = 10000
	reviewMaxLimit   = 5000

	productPageLimit = 100
)

// Options configures the Client
type Options struct {
	Token        string
	FeedbacksURL string
	ContentURL   string
	PricesURL    string

	// Slots bounds concurrent calls; once LowWater slots are left each call
	// waits Pause before going out
	Slots    int
	LowWater int
	Pause    time.Duration

	Timeout time.Duration
	HTTP    *http.Client
	Log     *logger.Logger
}

// FromConfig reads WB_* settings
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("WB_")
	return Options{
		Token:        c.MustSecret("SELLER_API_TOKEN"),
		FeedbacksURL: c.MayURL("BASE_URL_FEEDBACKS", defaultFeedbacksURL),
		ContentURL:   c.MayURL("BASE_URL_CONTENT", defaultContentURL),
		PricesURL:    c.MayURL("BASE_URL_PRICES", defaultPricesURL),
		Slots:        c.MayInt("RPS_SLOTS", defaultSlots),
		LowWater:     1,
		Pause:        c.MayDuration("RPS_PAUSE", defaultPause),
		Timeout:      c.MayDuration("TIMEOUT", defaultTimeout),
	}
}

// Client talks to the feedbacks, content and prices APIs with one token
type Client struct {
	api  *apiclient.Client
	raw  *apiclient.Client
	opts Options
	log  *logger.Logger
}

var _ marketplace.Seller = (*Client)(nil)

// New returns a Client with defaults applied
func New(o Options) *Client {
	if o.FeedbacksURL == "" {
		o.FeedbacksURL = defaultFeedbacksURL
	}
	if o.ContentURL == "" {
		o.ContentURL = defaultContentURL
	}
	if o.PricesURL == "" {
		o.PricesURL = defaultPricesURL
	}
	if o.Slots <= 0 {
		o.Slots = defaultSlots
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	log := o.Log
	if log == nil {
		log = logger.Named("wb")
	}
	token := o.Token
	lim := throttle.NewSemaphore(o.Slots, o.LowWater, o.Pause)
	return &Client{
		api: apiclient.New(apiclient.Options{
			Name:         "wb",
			Timeout:      o.Timeout,
			Auth:         func(h http.Header) { h.Set("Authorization", token) },
			RetryHeader:  "X-Ratelimit-Retry",
			ErrorMessage: errorMessage,
			Limiter:      lim,
			HTTP:         o.HTTP,
			Log:          log,
		}),
		// rich content lives on the public CDN and takes no token
		raw: apiclient.New(apiclient.Options{
			Name:    "wb-cdn",
			Timeout: o.Timeout,
			HTTP:    o.HTTP,
			Log:     log,
		}),
		opts: o,
		log:  log,
	}
}

// Symbol implements marketplace.Seller
func (c *Client) Symbol() marketplace.Symbol { return marketplace.WB }

// envelope is the common wrapper of feedbacks-api answers
type envelope[T any] struct {
	Data             *T       `json:"data"`
	Error            bool     `json:"error"`
	ErrorText        string   `json:"errorText"`
	AdditionalErrors []string `json:"additionalErrors"`
}

func (e envelope[T]) unwrap(op string) (*T, error) {
	if e.Error {
		msg := e.ErrorText
		if len(e.AdditionalErrors) > 0 {
			msg += ": " + strings.Join(e.AdditionalErrors, "; ")
		}
		return nil, perr.Unavailablef("wb %s: %s", op, msg)
	}
	if e.Data == nil {
		return nil, perr.Upstreamf("wb %s: response without data", op)
	}
	return e.Data, nil
}

func errorMessage(body []byte) string {
	var e envelope[struct{}]
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	msg := e.ErrorText
	if len(e.AdditionalErrors) > 0 {
		msg += " " + strings.Join(e.AdditionalErrors, "; ")
	}
	return strings.TrimSpace(msg)
}

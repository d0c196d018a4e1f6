// Package ozon is the Ozon Seller API adapter
package ozon

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"sellerbot/internal/adapters/apiclient"
	"sellerbot/internal/adapters/marketplace"
	"sellerbot/internal/core/throttle"
	"sellerbot/internal/platform/config"
	"sellerbot/internal/platform/logger"
)

const (
	defaultBaseURL = "https://api-seller.ozon.ru"
	defaultRPS     = 42
	defaultTimeout = 5 * time.Second

	reviewMinLimit   = 20
	reviewMaxLimit   = 100
	productPageLimit = 100
)

// Options configures the Client
type Options struct {
	ClientID string
	APIKey   string
	BaseURL  string
	// RPS is the per second request budget shared by all calls
	RPS     int
	Timeout time.Duration
	HTTP    *http.Client
	Log     *logger.Logger
}

// FromConfig reads OZON_* settings
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("OZON_")
	return Options{
		ClientID: c.MustString("SELLER_CLIENT_ID"),
		APIKey:   c.MustSecret("SELLER_API_KEY"),
		BaseURL:  c.MayURL("BASE_URL", defaultBaseURL),
		RPS:      c.MayInt("RPS", defaultRPS),
		Timeout:  c.MayDuration("TIMEOUT", defaultTimeout),
	}
}

// Client is an Ozon seller account
type Client struct {
	api  *apiclient.Client
	opts Options
	log  *logger.Logger
}

var _ marketplace.Seller = (*Client)(nil)

// New returns a Client with defaults applied
func New(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	if o.RPS <= 0 {
		o.RPS = defaultRPS
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	log := o.Log
	if log == nil {
		log = logger.Named("ozon")
	}
	id, key := o.ClientID, o.APIKey
	return &Client{
		api: apiclient.New(apiclient.Options{
			Name:    "oz",
			Timeout: o.Timeout,
			Auth: func(h http.Header) {
				h.Set("Client-Id", id)
				h.Set("Api-Key", key)
			},
			ErrorMessage: errorMessage,
			Limiter:      throttle.NewFixedWindow(o.RPS),
			HTTP:         o.HTTP,
			Log:          log,
		}),
		opts: o,
		log:  log,
	}
}

// Symbol implements marketplace.Seller
func (c *Client) Symbol() marketplace.Symbol { return marketplace.Ozon }

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.api.Post(ctx, c.opts.BaseURL+path, body, out)
}

// apiError is the body of non 2xx answers
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details []struct {
		TypeURL string `json:"typeUrl"`
		Value   string `json:"value"`
	} `json:"details"`
}

func errorMessage(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err != nil || e.Message == "" {
		return ""
	}
	return e.Message
}

// PremiumPlus reports whether the seller has the Premium Plus subscription
// required by the questions and reviews API
func (c *Client) PremiumPlus(ctx context.Context) (bool, error) {
	var out ratingSummary
	if err := c.post(ctx, "/v1/rating/summary", struct{}{}, &out); err != nil {
		return false, err
	}
	return out.PremiumPlus, nil
}

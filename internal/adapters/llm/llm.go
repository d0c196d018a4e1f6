// Package llm talks to an OpenAI compatible chat completions provider
package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"sellerbot/internal/adapters/apiclient"
	"sellerbot/internal/core/throttle"
	"sellerbot/internal/platform/config"
	perr "sellerbot/internal/platform/errors"
	"sellerbot/internal/platform/logger"
)

const (
	defaultTimeout     = 60 * time.Second
	defaultMaxAttempts = 10
	defaultRetryWait   = time.Second
)

// Roles of chat messages
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the chat completions body
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float32  `json:"temperature,omitempty"`
	MaxTokens   *uint32   `json:"max_tokens,omitempty"`
	Stream      *bool     `json:"stream,omitempty"`
}

// Choice is one completion
type Choice struct {
	Index        uint32  `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage is token accounting
type Usage struct {
	PromptTokens     uint32 `json:"prompt_tokens"`
	CompletionTokens uint32 `json:"completion_tokens"`
	TotalTokens      uint32 `json:"total_tokens"`
}

// ChatResponse is the chat completions answer
type ChatResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created uint64   `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Options configures the Client
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	// Interval paces requests; 0 disables pacing
	Interval    time.Duration
	MaxAttempts int
	RetryWait   time.Duration
	HTTP        *http.Client
	Log         *logger.Logger
}

// FromConfig reads AI_PROVIDER_* settings
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("AI_PROVIDER_")
	return Options{
		BaseURL:  c.MustURL("BASE_URL").String(),
		APIKey:   c.MustSecret("API_KEY"),
		Model:    c.MustString("MODEL"),
		Timeout:  c.MayDuration("TIMEOUT", defaultTimeout),
		Interval: c.MayDuration("INTERVAL", 0),
	}
}

// Client is an LLM provider
type Client struct {
	api  *apiclient.Client
	opts Options
}

// New returns a Client with defaults applied
func New(o Options) *Client {
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaultMaxAttempts
	}
	if o.RetryWait <= 0 {
		o.RetryWait = defaultRetryWait
	}
	key := o.APIKey
	return &Client{
		api: apiclient.New(apiclient.Options{
			Name:        "llm",
			Timeout:     o.Timeout,
			Auth:        func(h http.Header) { h.Set("Authorization", "Bearer "+key) },
			Limiter:     throttle.NewEvery(o.Interval),
			MaxAttempts: o.MaxAttempts,
			RetryWait:   o.RetryWait,
			HTTP:        o.HTTP,
			Log:         o.Log,
		}),
		opts: o,
	}
}

// Model is the configured default model
func (c *Client) Model() string { return c.opts.Model }

// Chat sends a chat completions request
func (c *Client) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	if req.Model == "" {
		req.Model = c.opts.Model
	}
	var out ChatResponse
	if err := c.api.Post(ctx, c.opts.BaseURL+"/chat/completions", req, &out); err != nil {
		return ChatResponse{}, err
	}
	return out, nil
}

// Prompt sends prompt as a single user message and returns the first choice
func (c *Client) Prompt(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.Chat(ctx, ChatRequest{Model: model, Messages: []Message{{Role: RoleUser, Content: prompt}}})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", perr.NotFoundf("llm %s: no choices in response %s", resp.Model, resp.ID)
	}
	return resp.Choices[0].Message.Content, nil
}

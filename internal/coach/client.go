// ABOUTME: Chat-completion client that turns a journal digest into coaching text.
// ABOUTME: Single attempt per call; failures become UpstreamError or a placeholder.
package coach

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds one chat-completion call.
	DefaultTimeout = 30 * time.Second
	// DefaultCacheTTL is how long cached summaries live.
	DefaultCacheTTL = time.Hour

	// PlaceholderMessage replaces the summary when the provider call fails.
	PlaceholderMessage = "AI coaching is temporarily unavailable. Your numbers above are still up to date."
	// UnavailableMessage is shown when no API key is configured.
	UnavailableMessage = "coaching unavailable: set an API key to enable AI summaries"

	systemPrompt = "You are a supportive fitness and sleep coach. " +
		"Read the user's recent training and sleep journal and reply with one short paragraph: " +
		"what is going well, what to improve, and one concrete next step."
)

// Config holds provider settings.
type Config struct {
	Provider Provider
	BaseURL  string
	Model    string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// withDefaults fills empty fields from the provider defaults.
func (c Config) withDefaults() Config {
	if c.Provider == "" {
		c.Provider = ProviderOpenRouter
	}
	if c.BaseURL == "" {
		c.BaseURL = c.Provider.DefaultBaseURL()
	}
	if c.Model == "" {
		c.Model = c.Provider.DefaultModel()
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client calls a chat-completion endpoint.
type Client struct {
	cfg        Config
	httpClient *resty.Client
	cache      Cache
	logger     *zap.Logger
}

// New creates a client. cache may be nil.
func New(cfg Config, cache Cache, logger *zap.Logger) *Client {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		httpClient.SetAuthToken(cfg.APIKey)
	}
	if cfg.Provider == ProviderOpenRouter {
		httpClient.SetHeader("X-Title", "fitlog")
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		cache:      cache,
		logger:     logger,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.cfg.APIKey != ""
}

// Provider returns the configured provider.
func (c *Client) Provider() Provider {
	return c.cfg.Provider
}

// Model returns the configured model.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Summarize sends digest to the provider and returns the reply text.
func (c *Client) Summarize(ctx context.Context, digest string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	key := CacheKey(c.cfg.Provider, c.cfg.Model, digest)
	if c.cache != nil {
		if cached, ok, err := c.cache.Get(ctx, key); err != nil {
			c.logger.Warn("coach cache read failed", zap.Error(err))
		} else if ok {
			c.logger.Debug("coach cache hit", zap.String("key", key))
			return cached, nil
		}
	}

	req := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: digest},
		},
	}

	c.logger.Info("Calling chat completion",
		zap.String("provider", string(c.cfg.Provider)),
		zap.String("model", c.cfg.Model),
	)

	var result chatResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode()
		}
		return "", &UpstreamError{Provider: c.cfg.Provider, StatusCode: status, Reason: "request failed", Err: err}
	}
	if resp.IsError() {
		return "", &UpstreamError{
			Provider:   c.cfg.Provider,
			StatusCode: resp.StatusCode(),
			Reason:     truncate(strings.TrimSpace(resp.String()), 200),
		}
	}
	if len(result.Choices) == 0 {
		return "", &UpstreamError{Provider: c.cfg.Provider, StatusCode: resp.StatusCode(), Reason: "malformed response: no choices"}
	}

	text := strings.TrimSpace(result.Choices[0].Message.Content)
	if text == "" {
		return "", &UpstreamError{Provider: c.cfg.Provider, StatusCode: resp.StatusCode(), Reason: "empty response"}
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, text, c.cfg.CacheTTL); err != nil {
			c.logger.Warn("coach cache write failed", zap.Error(err))
		}
	}
	return text, nil
}

// SummarizeOrPlaceholder never fails: disabled clients get UnavailableMessage
// and upstream failures get PlaceholderMessage.
func (c *Client) SummarizeOrPlaceholder(ctx context.Context, digest string) string {
	text, err := c.Summarize(ctx, digest)
	if err == nil {
		return text
	}
	if errors.Is(err, ErrDisabled) {
		return UnavailableMessage
	}

	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		c.logger.Warn("chat completion failed",
			zap.String("provider", string(upstream.Provider)),
			zap.Int("status_code", upstream.StatusCode),
			zap.Error(err),
		)
	} else {
		c.logger.Warn("chat completion failed", zap.Error(err))
	}
	return PlaceholderMessage
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

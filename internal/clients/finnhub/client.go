// Package finnhub provides a client for the Finnhub news and sentiment API
package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	DefaultBaseURL   = "https://finnhub.io/api/v1"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 1 // requests per second

	// Company news lookback window.
	newsLookbackDays = 14
)

// Client implements the NewsClient interface against Finnhub.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	now        func() time.Time
}

var _ interfaces.NewsClient = (*Client)(nil)

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit in requests per second
func WithRateLimit(requestsPerSecond float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithClock overrides the clock used for news date windows.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a new Finnhub client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		logger:  common.NewSilentLogger(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type newsItemResponse struct {
	Category string `json:"category"`
	Datetime int64  `json:"datetime"`
	Headline string `json:"headline"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

type sentimentResponse struct {
	CompanyNewsScore float64 `json:"companyNewsScore"`
	Symbol           string  `json:"symbol"`
}

// GetNews retrieves recent company news for a symbol, or general market
// news when the symbol is empty.
func (c *Client) GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	params := url.Values{}
	path := "/news"
	if symbol != "" {
		symbol = models.CanonicalSymbol(symbol)
		path = "/company-news"
		now := c.now()
		params.Set("symbol", symbol)
		params.Set("from", now.AddDate(0, 0, -newsLookbackDays).Format(models.DateFormat))
		params.Set("to", now.Format(models.DateFormat))
	} else {
		params.Set("category", "general")
	}

	var items []newsItemResponse
	if err := c.get(ctx, path, params, &items); err != nil {
		return nil, err
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	news := make([]models.NewsItem, 0, len(items))
	for _, item := range items {
		news = append(news, models.NewsItem{
			Category:    item.Category,
			Headline:    item.Headline,
			Source:      item.Source,
			Summary:     item.Summary,
			URL:         item.URL,
			Related:     item.Related,
			PublishedAt: time.Unix(item.Datetime, 0).UTC(),
		})
	}

	c.logger.Debug().Str("symbol", symbol).Int("items", len(news)).Msg("News fetched")
	return news, nil
}

// GetSentiment retrieves the company news sentiment score, 0 to 1 with 1
// being bullish.
func (c *Client) GetSentiment(ctx context.Context, symbol string) (float64, error) {
	symbol = models.CanonicalSymbol(symbol)

	params := url.Values{}
	params.Set("symbol", symbol)

	var resp sentimentResponse
	if err := c.get(ctx, "/news-sentiment", params, &resp); err != nil {
		return 0, err
	}
	return resp.CompanyNewsScore, nil
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	params.Set("token", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("path", path).Msg("Finnhub API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(models.ErrProvider, fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Join(models.ErrProvider,
			fmt.Errorf("finnhub %s returned status %d: %s", path, resp.StatusCode, string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return errors.Join(models.ErrProvider, fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}

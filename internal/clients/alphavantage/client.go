// Package alphavantage provides a client for the Alpha Vantage API
package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	DefaultBaseURL = "https://www.alphavantage.co/query"
	DefaultTimeout = 30 * time.Second
	// Free tier allows 5 requests per minute.
	DefaultRateLimit = 5.0 / 60.0
)

// Client implements the PriceClient interface against Alpha Vantage.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

var _ interfaces.PriceClient = (*Client)(nil)

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

// NewClient creates a new Alpha Vantage client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error. It unwraps to models.ErrProvider so
// batch refreshes can skip the affected instrument and continue.
type APIError struct {
	StatusCode int
	Message    string
	Symbol     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("alphavantage API error: %s (status: %d, symbol: %s)", e.Message, e.StatusCode, e.Symbol)
}

func (e *APIError) Unwrap() error {
	return models.ErrProvider
}

// timeSeriesResponse mirrors the TIME_SERIES_DAILY payload. Error and
// rate-limit conditions arrive as 200 responses with message fields.
type timeSeriesResponse struct {
	ErrorMessage string                       `json:"Error Message"`
	Note         string                       `json:"Note"`
	Information  string                       `json:"Information"`
	Series       map[string]map[string]string `json:"Time Series (Daily)"`
}

// GetTimeSeries retrieves daily closing prices for a symbol.
func (c *Client) GetTimeSeries(ctx context.Context, symbol string, mode interfaces.FetchMode) (models.PriceSeries, error) {
	symbol = models.CanonicalSymbol(symbol)

	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("outputsize", string(mode))
	params.Set("apikey", c.apiKey)

	var resp timeSeriesResponse
	if err := c.get(ctx, symbol, params, &resp); err != nil {
		return nil, err
	}

	if resp.ErrorMessage != "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.ErrorMessage, Symbol: symbol}
	}
	if resp.Note != "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Note, Symbol: symbol}
	}
	if len(resp.Series) == 0 {
		msg := resp.Information
		if msg == "" {
			msg = "empty time series"
		}
		return nil, &APIError{StatusCode: http.StatusOK, Message: msg, Symbol: symbol}
	}

	series := make(models.PriceSeries, 0, len(resp.Series))
	for dateStr, fields := range resp.Series {
		date, err := time.Parse(models.DateFormat, dateStr)
		if err != nil {
			c.logger.Warn().Str("symbol", symbol).Str("date", dateStr).Msg("Skipping unparseable date")
			continue
		}
		closeStr, ok := fields["4. close"]
		if !ok {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(closeStr), 64)
		if err != nil {
			c.logger.Warn().Str("symbol", symbol).Str("close", closeStr).Msg("Skipping unparseable close")
			continue
		}
		series = append(series, models.PricePoint{Date: models.Day(date), Price: price})
	}
	series.Sort()

	c.logger.Debug().Str("symbol", symbol).Int("points", series.Len()).Str("mode", string(mode)).Msg("Time series fetched")
	return series, nil
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, symbol string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("symbol", symbol).Msg("Alpha Vantage API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(models.ErrProvider, fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Symbol:     symbol,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return errors.Join(models.ErrProvider, fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}

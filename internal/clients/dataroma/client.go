// Package dataroma scrapes 13F holdings tables from dataroma.com
package dataroma

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	DefaultBaseURL = "https://dataroma.com/m/holdings.php"
	DefaultTimeout = 30 * time.Second
	// Keep scraping polite: one request every two seconds.
	DefaultRateLimit = 0.5
)

// Client implements the HoldingsClient interface by scraping the holdings
// grid for a 13F filer symbol (e.g. "BRK" for Berkshire Hathaway).
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

var _ interfaces.HoldingsClient = (*Client)(nil)

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

// NewClient creates a new Dataroma scraper client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
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

// GetHoldings scrapes the holdings grid for a filer symbol. Weights on the
// page are percentages; they are normalized to [0,1] fractions.
func (c *Client) GetHoldings(ctx context.Context, symbol string) (models.HoldingsTable, error) {
	symbol = models.CanonicalSymbol(symbol)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s?m=%s", c.baseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// The site rejects default Go user agents.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; folio/1.0)")

	c.logger.Debug().Str("symbol", symbol).Msg("Dataroma holdings request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(models.ErrProvider, fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Join(models.ErrProvider,
			fmt.Errorf("holdings page for %q returned status %d: %s", symbol, resp.StatusCode, string(body)))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Join(models.ErrProvider, fmt.Errorf("failed to parse holdings page: %w", err))
	}

	table := c.parseGrid(doc)
	if len(table) == 0 {
		return nil, errors.Join(models.ErrProvider, fmt.Errorf("no holdings rows found for %q", symbol))
	}
	table.Sort()

	c.logger.Debug().Str("symbol", symbol).Int("rows", len(table)).Msg("Holdings scraped")
	return table, nil
}

// parseGrid extracts (symbol, pct) rows from the #grid table. The stock cell
// text is "SYM - Company Name"; the following cell is the portfolio percent.
func (c *Client) parseGrid(doc *goquery.Document) models.HoldingsTable {
	var table models.HoldingsTable

	doc.Find("table#grid tbody tr").Each(func(_ int, row *goquery.Selection) {
		stockCell := row.Find("td.stock").First()
		if stockCell.Length() == 0 {
			return
		}

		text := strings.TrimSpace(stockCell.Text())
		sym := text
		if i := strings.Index(text, "-"); i >= 0 {
			sym = text[:i]
		}
		sym = models.CanonicalSymbol(sym)
		if sym == "" {
			return
		}

		pctText := strings.TrimSpace(stockCell.Next().Text())
		pctText = strings.TrimSuffix(pctText, "%")
		pct, err := strconv.ParseFloat(strings.TrimSpace(pctText), 64)
		if err != nil {
			c.logger.Warn().Str("symbol", sym).Str("pct", pctText).Msg("Skipping holdings row with unparseable weight")
			return
		}

		table = append(table, models.HoldingsRow{Symbol: sym, Pct: pct / 100})
	})

	return table
}

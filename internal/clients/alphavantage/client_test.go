package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

const dailyPayload = `{
	"Meta Data": {
		"1. Information": "Daily Prices (open, high, low, close) and Volumes",
		"2. Symbol": "VTI"
	},
	"Time Series (Daily)": {
		"2024-01-03": {
			"1. open": "236.10",
			"2. high": "237.00",
			"3. low": "235.20",
			"4. close": "236.43",
			"5. volume": "3120000"
		},
		"2024-01-02": {
			"1. open": "237.50",
			"2. high": "238.10",
			"3. low": "236.90",
			"4. close": "237.88",
			"5. volume": "2980000"
		}
	}
}`

func TestGetTimeSeries_ParsesResponse(t *testing.T) {
	var capturedQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = map[string]string{
			"function":   r.URL.Query().Get("function"),
			"symbol":     r.URL.Query().Get("symbol"),
			"outputsize": r.URL.Query().Get("outputsize"),
			"apikey":     r.URL.Query().Get("apikey"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(dailyPayload))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(1000))
	series, err := client.GetTimeSeries(context.Background(), "vti", interfaces.FetchCompact)
	if err != nil {
		t.Fatalf("GetTimeSeries failed: %v", err)
	}

	if capturedQuery["function"] != "TIME_SERIES_DAILY" {
		t.Errorf("expected function TIME_SERIES_DAILY, got %s", capturedQuery["function"])
	}
	if capturedQuery["symbol"] != "VTI" {
		t.Errorf("expected canonical symbol VTI, got %s", capturedQuery["symbol"])
	}
	if capturedQuery["outputsize"] != "compact" {
		t.Errorf("expected outputsize compact, got %s", capturedQuery["outputsize"])
	}
	if capturedQuery["apikey"] != "test-key" {
		t.Errorf("expected apikey test-key, got %s", capturedQuery["apikey"])
	}

	if series.Len() != 2 {
		t.Fatalf("expected 2 points, got %d", series.Len())
	}
	// Sorted ascending by date regardless of map iteration order.
	if series[0].Date.Format(models.DateFormat) != "2024-01-02" {
		t.Errorf("expected first date 2024-01-02, got %s", series[0].Date.Format(models.DateFormat))
	}
	if series[0].Price != 237.88 {
		t.Errorf("expected first close 237.88, got %v", series[0].Price)
	}
	if series[1].Price != 236.43 {
		t.Errorf("expected second close 236.43, got %v", series[1].Price)
	}
}

func TestGetTimeSeries_FullMode(t *testing.T) {
	var outputsize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		outputsize = r.URL.Query().Get("outputsize")
		w.Write([]byte(dailyPayload))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(1000))
	if _, err := client.GetTimeSeries(context.Background(), "VTI", interfaces.FetchFull); err != nil {
		t.Fatalf("GetTimeSeries failed: %v", err)
	}
	if outputsize != "full" {
		t.Errorf("expected outputsize full, got %s", outputsize)
	}
}

func TestGetTimeSeries_ErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Error Message": "Invalid API call. Please retry or visit the documentation."}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(1000))
	_, err := client.GetTimeSeries(context.Background(), "NOPE", interfaces.FetchCompact)
	if err == nil {
		t.Fatal("expected error for API error message")
	}
	if !errors.Is(err, models.ErrProvider) {
		t.Errorf("expected error to unwrap to ErrProvider, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Symbol != "NOPE" {
		t.Errorf("expected symbol NOPE in error, got %s", apiErr.Symbol)
	}
}

func TestGetTimeSeries_RateLimitNote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(1000))
	_, err := client.GetTimeSeries(context.Background(), "VTI", interfaces.FetchCompact)
	if !errors.Is(err, models.ErrProvider) {
		t.Errorf("expected ErrProvider for throttle note, got %v", err)
	}
}

func TestGetTimeSeries_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(1000))
	_, err := client.GetTimeSeries(context.Background(), "VTI", interfaces.FetchCompact)
	if !errors.Is(err, models.ErrProvider) {
		t.Errorf("expected ErrProvider for HTTP 503, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", apiErr.StatusCode)
	}
}

func TestGetTimeSeries_SkipsMalformedRows(t *testing.T) {
	payload := `{
		"Time Series (Daily)": {
			"2024-01-02": {"4. close": "100.5"},
			"not-a-date": {"4. close": "1"},
			"2024-01-03": {"4. close": "garbage"}
		}
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(1000))
	series, err := client.GetTimeSeries(context.Background(), "VTI", interfaces.FetchCompact)
	if err != nil {
		t.Fatalf("GetTimeSeries failed: %v", err)
	}
	if series.Len() != 1 {
		t.Fatalf("expected 1 valid point, got %d", series.Len())
	}
	if series[0].Price != 100.5 {
		t.Errorf("expected price 100.5, got %v", series[0].Price)
	}
}

package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"marketindex/internal/domain/entities"
	"marketindex/internal/usecase/interfaces"
)

var ErrMissingMarketDataURL = errors.New("missing MARKET_DATA_URL")

const requestTimeout = 15 * time.Second

// Client fetches analyzed stock signals from the external market-data service.
//
// The service computes all indicators (EMA/SMA, MACD, RSI, Stochastic, ADX)
// remotely; this client only transports and normalizes the result.

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

var _ interfaces.IMarketDataClient = (*Client)(nil)

func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = os.Getenv("MARKET_DATA_URL")
	}
	if baseURL == "" {
		return nil, ErrMissingMarketDataURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse market data url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("market data url must be absolute")
	}

	return &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

func (c *Client) AnalyzeStocks(ctx context.Context, period, sector string) ([]entities.StockAnalysis, error) {
	endpoint := c.baseURL.JoinPath("analyze_stocks")
	q := url.Values{}
	if period != "" {
		q.Set("period", period)
	}
	if sector != "" {
		q.Set("sector", sector)
	}
	endpoint.RawQuery = q.Encode()

	log.Printf("[export][marketdata] fetch start period=%s sector=%s", period, sector)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[export][marketdata] fetch failed err=%v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[export][marketdata] fetch rejected status=%d", resp.StatusCode)
		return nil, fmt.Errorf("market data service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}

	var stocks []entities.StockAnalysis
	if err := json.Unmarshal(body, &stocks); err != nil {
		log.Printf("[export][marketdata] response unmarshal failed err=%v", err)
		return nil, fmt.Errorf("decode market data response: %w", err)
	}

	log.Printf("[export][marketdata] fetch success rows=%d", len(stocks))
	return stocks, nil
}

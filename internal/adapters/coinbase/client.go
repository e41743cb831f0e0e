package coinbase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"pythia/internal/domain/marketdata"
	"pythia/pkg/errors"
	"pythia/pkg/logger"
)

// DefaultBaseURL is the Coinbase Exchange public market data endpoint.
const DefaultBaseURL = "https://api.exchange.coinbase.com"

// Client fetches candlestick data from the Coinbase Exchange REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
	log        *logger.Logger
}

// NewClient creates a candle fetcher against the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
		log:        logger.Get().With("component", "coinbase"),
	}
}

// Candles fetches OHLCV candles for symbol over a window of
// granularity*limit seconds ending now, and returns them sorted
// ascending by time. One attempt, no retry.
func (c *Client) Candles(ctx context.Context, symbol string, granularity, limit int) (marketdata.Series, error) {
	if symbol == "" {
		return nil, errors.Wrap(errors.ErrInvalidSymbol, "symbol is required")
	}
	if granularity <= 0 || limit <= 0 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "granularity=%d limit=%d", granularity, limit)
	}

	end := c.now().UTC()
	start := end.Add(-time.Duration(granularity*limit) * time.Second)

	query := url.Values{}
	query.Set("granularity", strconv.Itoa(granularity))
	query.Set("start", start.Format(time.RFC3339))
	query.Set("end", end.Format(time.RFC3339))

	endpoint := fmt.Sprintf("%s/products/%s/candles?%s", c.baseURL, url.PathEscape(symbol), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create candle request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch candles")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read candle response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(errors.ErrExchangeUnavailable, "candle request failed (%d): %s",
			resp.StatusCode, string(body))
	}

	// Each row is [time, low, high, open, close, volume] with time in
	// epoch seconds.
	var rows [][]float64
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, errors.Wrap(err, "unmarshal candle response")
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(errors.ErrInsufficientData, "empty candle response for %s", symbol)
	}

	series := make(marketdata.Series, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, errors.Wrapf(errors.ErrExternal, "malformed candle row %d: %d fields", i, len(row))
		}
		series = append(series, marketdata.Candle{
			Time:   time.Unix(int64(row[0]), 0).UTC(),
			Low:    row[1],
			High:   row[2],
			Open:   row[3],
			Close:  row[4],
			Volume: row[5],
		})
	}

	series.SortByTime()

	c.log.Debugw("Fetched candles",
		"symbol", symbol,
		"granularity", granularity,
		"count", len(series))

	return series, nil
}

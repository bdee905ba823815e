package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/feirapp/backend/internal/domain"
	"golang.org/x/time/rate"
)

const maxFetchAttempts = 3

// Client downloads the published price sheet as CSV.
type Client struct {
	httpClient  *http.Client
	feedURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new feed client. ratePerMinute bounds how often the
// sheet is re-fetched; the publisher throttles aggressive readers.
func NewClient(feedURL string, timeout time.Duration, ratePerMinute float64, burst int) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if ratePerMinute <= 0 {
		ratePerMinute = 6
	}
	if burst <= 0 {
		burst = 2
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		feedURL:     feedURL,
		rateLimiter: rate.NewLimiter(rate.Limit(ratePerMinute/60.0), burst),
	}
}

// SetDebug enables verbose fetch logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// exponentialBackoff returns the sleep duration before retrying the given attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// FetchRecords downloads and decodes the price feed. The first row of the
// sheet is a header and is discarded; callers receive data rows only.
// Transient failures are retried with exponential backoff; every failure
// wraps domain.ErrFeedUnavailable.
func (c *Client) FetchRecords(ctx context.Context) ([][]string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		records, err := c.fetchOnce(ctx)
		if err != nil {
			if c.debug {
				log.Printf("[FEED] fetch error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			if attempt < maxFetchAttempts {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(exponentialBackoff(attempt)):
				}
			}
			continue
		}

		if c.debug {
			log.Printf("[FEED] fetched %d data rows", len(records))
		}
		return records, nil
	}

	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Feira/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrFeedUnavailable, resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1 // the sheet pads short rows inconsistently

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: decoding csv: %v", domain.ErrFeedUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: feed returned no rows", domain.ErrFeedUnavailable)
	}

	return rows[1:], nil
}

package sheets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stylist/backend/internal/domain"
)

// DefaultBaseURL is the public spreadsheet host
const DefaultBaseURL = "https://docs.google.com"

const maxAttempts = 3

// Client downloads spreadsheet tabs through the CSV export URL
type Client struct {
	httpClient *http.Client
	baseURL    string
	backoff    func(attempt int) time.Duration
}

// NewClient creates a new export client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		backoff: exponentialBackoff,
	}
}

// ExportURL builds the CSV export address for a sheet tab
func (c *Client) ExportURL(sheetID, gid string) string {
	params := url.Values{}
	params.Add("format", "csv")
	params.Add("gid", gid)

	return fmt.Sprintf("%s/spreadsheets/d/%s/export?%s", c.baseURL, url.PathEscape(sheetID), params.Encode())
}

// Export implements domain.SheetExporter
func (c *Client) Export(ctx context.Context, sheetID, gid string) ([]domain.Product, error) {
	if sheetID == "" {
		return nil, fmt.Errorf("%w: no spreadsheet id configured", domain.ErrImportFailed)
	}
	if gid == "" {
		gid = "0"
	}

	reqURL := c.ExportURL(sheetID, gid)
	log.Info().Str("component", "sheets").Str("url", reqURL).Msg("fetching spreadsheet export")

	// Retry transient failures; 4xx means the sheet is private or missing
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, status, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Warn().Str("component", "sheets").Int("attempt", attempt).Err(err).Msg("export request failed")
			lastErr = err
		} else if status != http.StatusOK {
			lastErr = fmt.Errorf("%w: status %d", domain.ErrImportFailed, status)
			if status < http.StatusInternalServerError {
				return nil, lastErr
			}
			log.Warn().Str("component", "sheets").Int("attempt", attempt).Int("status", status).Msg("export returned server error")
		} else {
			products, err := Parse(bytes.NewReader(body))
			if err != nil {
				return nil, err
			}
			log.Info().Str("component", "sheets").Int("rows", len(products)).Msg("spreadsheet export parsed")
			return products, nil
		}

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", domain.ErrImportFailed, ctx.Err())
			case <-time.After(c.backoff(attempt)):
			}
		}
	}

	return nil, lastErr
}

// doRequest executes a GET and returns the full body with its status code
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Stylist/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrImportFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: reading body: %v", domain.ErrImportFailed, err)
	}
	return body, resp.StatusCode, nil
}

func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"fuel-sheets/internal/logger"
)

// ErrTooLarge indicates the download exceeded the configured size cap.
var ErrTooLarge = errors.New("response exceeds size limit")

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %s", e.URL, e.Status)
}

// Fetcher downloads the source workbook
type Fetcher struct {
	client   *http.Client
	maxBytes int64

	// Progress, if set, receives the expected size (-1 if unknown) and
	// returns a writer that is fed every downloaded byte
	Progress func(total int64) io.Writer
}

// NewFetcher creates a fetcher with its own HTTP client
func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	return NewFetcherWithClient(&http.Client{Timeout: timeout}, maxBytes)
}

// NewFetcherWithClient creates a fetcher using client
func NewFetcherWithClient(client *http.Client, maxBytes int64) *Fetcher {
	return &Fetcher{client: client, maxBytes: maxBytes}
}

// Fetch downloads url and returns the response body
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	logger.Info("Get -> %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download workbook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if f.maxBytes > 0 && resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes announced, limit %d", ErrTooLarge, resp.ContentLength, f.maxBytes)
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	if f.Progress != nil {
		body = io.TeeReader(body, f.Progress(resp.ContentLength))
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrTooLarge, f.maxBytes)
	}

	logger.Info("File ready")
	return data, nil
}

// ReadFile loads a workbook from local disk
func ReadFile(path string) ([]byte, error) {
	logger.Info("Read -> %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	logger.Info("File ready")
	return data, nil
}

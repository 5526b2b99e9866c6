package geocoding

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every request made by the built-in HTTP clients.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a provider reply is read into memory.
const maxBodySize = 1 << 20

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{Timeout: timeout}
}

// newGetRequest builds a GET request for baseURL with params merged into its query.
func newGetRequest(ctx context.Context, baseURL string, params url.Values) (*http.Request, error) {
	reqURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// fetch executes req and returns the body of a 2xx response.
// Transport failures become *TransportError and non-2xx statuses become *ServiceError.
func fetch(ctx context.Context, client HTTPClient, log *slog.Logger, provider string, req *http.Request) ([]byte, error) {
	log.DebugContext(ctx, "Sending geocoding request", "provider", provider, "endpoint", req.URL.Host+req.URL.Path)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &TransportError{Provider: provider, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.WarnContext(ctx, "Geocoding provider returned error status",
			"provider", provider, "status", resp.StatusCode, "body", string(body))
		return nil, &ServiceError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	log.DebugContext(ctx, "Geocoding provider raw response", "provider", provider, "body", string(body))

	return body, nil
}

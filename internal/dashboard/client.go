package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vedantk/helixar-go/internal/logger"
)

// Client fetches the dashboard payload from the analytics backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against the given backend base URL
// (no trailing slash).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// Fetch performs one GET against the backend and adapts the payload.
// Any transport error or non-2xx status is a single load failure; there
// is no retry.
func (c *Client) Fetch(ctx context.Context) (Data, error) {
	url := c.baseURL + "/api/dashboard"
	logger.L.Debug("fetching dashboard", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Data{}, fmt.Errorf("dashboard request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Data{}, fmt.Errorf("dashboard fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Data{}, fmt.Errorf("dashboard fetch: unexpected status %d", resp.StatusCode)
	}

	var raw rawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Data{}, fmt.Errorf("dashboard decode: %w", err)
	}

	return adapt(raw), nil
}

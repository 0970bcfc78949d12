package congress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultBase = "https://api.congress.gov/v3"

// Cache stores raw API responses keyed by request path, so enriching seven
// questions for one bill does not hit the same endpoint seven times.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// Client talks to the congress.gov v3 API. A request that fails for any
// reason degrades to an empty document: partial facts for a question beat no
// facts at all.
type Client struct {
	apiKey     string
	base       string
	httpClient *http.Client

	// Cache is optional; nil disables response caching.
	Cache Cache
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		base:       defaultBase,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, path string) map[string]any {
	if c.Cache != nil {
		if cached, ok := c.Cache.Get(ctx, path); ok {
			return decodeDocument([]byte(cached), path)
		}
	}

	url := fmt.Sprintf("%s%s?api_key=%s", c.base, path, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Error("congress request build failed", "path", path, "error", err)
		return map[string]any{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("congress request failed", "path", path, "error", err)
		return map[string]any{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("congress request rejected", "path", path, "status", resp.StatusCode)
		return map[string]any{}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("congress response read failed", "path", path, "error", err)
		return map[string]any{}
	}

	doc := decodeDocument(body, path)
	if len(doc) > 0 && c.Cache != nil {
		c.Cache.Set(ctx, path, string(body))
	}
	return doc
}

func decodeDocument(body []byte, path string) map[string]any {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		slog.Error("congress response decode failed", "path", path, "error", err)
		return map[string]any{}
	}
	return doc
}

func billPath(congress int, billType string, number int) string {
	return fmt.Sprintf("/bill/%d/%s/%d", congress, billType, number)
}

func (c *Client) billRoot(ctx context.Context, congress int, billType string, number int) map[string]any {
	return c.get(ctx, billPath(congress, billType, number))
}

func (c *Client) billCommittees(ctx context.Context, congress int, billType string, number int) map[string]any {
	return c.get(ctx, billPath(congress, billType, number)+"/committees")
}

func (c *Client) billCosponsors(ctx context.Context, congress int, billType string, number int) map[string]any {
	return c.get(ctx, billPath(congress, billType, number)+"/cosponsors")
}

func (c *Client) billAmendments(ctx context.Context, congress int, billType string, number int) map[string]any {
	return c.get(ctx, billPath(congress, billType, number)+"/amendments")
}

func (c *Client) billActions(ctx context.Context, congress int, billType string, number int) map[string]any {
	return c.get(ctx, billPath(congress, billType, number)+"/actions")
}

func (c *Client) billSummaries(ctx context.Context, congress int, billType string, number int) map[string]any {
	return c.get(ctx, billPath(congress, billType, number)+"/summaries")
}

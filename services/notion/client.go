package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	APIVersion     = "2022-06-28"

	maxPageSize    = 100
	requestTimeout = 15 * time.Second
)

// APIError is a non-2xx response from Notion.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("notion: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("notion: status %d (%s): %s", e.Status, e.Code, e.Message)
}

// Client talks to the Notion REST API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryDatabase returns every page of databaseID matching filter, following
// pagination cursors. A nil filter returns all pages.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, filter any) ([]Page, error) {
	var pages []Page
	req := queryRequest{Filter: filter, PageSize: maxPageSize}
	for {
		var resp queryResponse
		path := fmt.Sprintf("/databases/%s/query", databaseID)
		if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
			return nil, fmt.Errorf("query database %s: %w", databaseID, err)
		}
		pages = append(pages, resp.Results...)
		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			break
		}
		req.StartCursor = *resp.NextCursor
	}
	c.logger.Debug("notion database queried",
		zap.String("databaseId", databaseID), zap.Int("pages", len(pages)))
	return pages, nil
}

// CreatePage adds a row to databaseID and returns the new page ID.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties map[string]Property) (string, error) {
	body := createPageRequest{
		Parent:     parent{DatabaseID: databaseID},
		Properties: properties,
	}
	var page Page
	if err := c.do(ctx, http.MethodPost, "/pages", body, &page); err != nil {
		return "", fmt.Errorf("create page in %s: %w", databaseID, err)
	}
	c.logger.Info("notion page created",
		zap.String("databaseId", databaseID), zap.String("pageId", page.ID))
	return page.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", APIVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response failed: %w", err)
	}
	return nil
}

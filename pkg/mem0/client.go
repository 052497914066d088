package mem0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultBaseURL is the hosted memory platform endpoint.
const DefaultBaseURL = "https://api.mem0.ai"

// Config carries the connection settings for the memory store.
type Config struct {
	BaseURL   string
	APIKey    string
	OrgID     string
	ProjectID string
}

// Client talks to the remote memory store over its REST API. It performs a
// single round-trip per call and implements no retries; retry policy belongs
// to callers that want one.
type Client struct {
	baseURL    string
	apiKey     string
	orgID      string
	projectID  string
	httpClient *http.Client
}

// NewClient creates a memory store client from the given configuration.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:   baseURL,
		apiKey:    cfg.APIKey,
		orgID:     cfg.OrgID,
		projectID: cfg.ProjectID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Add stores a new memory and returns the extracted records.
func (c *Client) Add(ctx context.Context, req *AddRequest) (*AddResponse, error) {
	var resp AddResponse
	if err := c.do(ctx, "add", http.MethodPost, "/v1/memories/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Search performs a semantic search scoped by the request's filters.
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.do(ctx, "search", http.MethodPost, "/v2/memories/search/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetAll lists memories matching the request's scope. The returned page
// carries the total match count alongside the records.
func (c *Client) GetAll(ctx context.Context, req *ListRequest) (*Page, error) {
	var page Page
	if err := c.do(ctx, "get_all", http.MethodPost, "/v2/memories/", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves a single memory by id.
func (c *Client) Get(ctx context.Context, memoryID string) (*Record, error) {
	var rec Record
	path := fmt.Sprintf("/v1/memories/%s/", url.PathEscape(memoryID))
	if err := c.do(ctx, "get", http.MethodGet, path, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update replaces the text of an existing memory.
func (c *Client) Update(ctx context.Context, memoryID, text string) (*Record, error) {
	var rec Record
	path := fmt.Sprintf("/v1/memories/%s/", url.PathEscape(memoryID))
	body := map[string]string{"text": text}
	if err := c.do(ctx, "update", http.MethodPut, path, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes a memory by id.
func (c *Client) Delete(ctx context.Context, memoryID string) error {
	path := fmt.Sprintf("/v1/memories/%s/", url.PathEscape(memoryID))
	return c.do(ctx, "delete", http.MethodDelete, path, nil, nil)
}

// Project fetches the current project settings from the remote store. There is
// no local cache; every read goes to the store so out-of-band changes are
// always visible.
func (c *Client) Project(ctx context.Context) (*ProjectSettings, error) {
	var settings ProjectSettings
	if err := c.do(ctx, "get_project", http.MethodGet, c.projectPath(), nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateProject applies a partial update to the project settings.
func (c *Client) UpdateProject(ctx context.Context, patch *ProjectPatch) error {
	return c.do(ctx, "update_project", http.MethodPatch, c.projectPath(), patch, nil)
}

// Feedback reports retrieval quality for a memory.
func (c *Client) Feedback(ctx context.Context, req *FeedbackRequest) error {
	return c.do(ctx, "feedback", http.MethodPost, "/v1/feedback/", req, nil)
}

func (c *Client) projectPath() string {
	if c.orgID != "" && c.projectID != "" {
		return fmt.Sprintf("/v1/orgs/%s/projects/%s/", url.PathEscape(c.orgID), url.PathEscape(c.projectID))
	}
	return "/v1/project/"
}

// do performs a single JSON round-trip against the store. Every failure comes
// back as a *RemoteError so callers can distinguish transport failures from
// remote rejections.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Op: op, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("calling memory store", "op", op, "method", method, "path", path, "requestID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		log.Error("memory store rejected request", "op", op, "status", resp.StatusCode, "requestID", requestID)
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	log.Debug("memory store call succeeded", "op", op, "requestID", requestID)
	return nil
}

package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lox/notion-mcp/internal/config"
)

const (
	defaultBaseURL      = "https://api.notion.com/v1"
	defaultNotionAPIRev = "2022-06-28"

	maxPageSize = 100
)

// Client is a per-tenant binding of one bearer token to the Notion API. It
// holds no state beyond the credential and is constructed fresh for every
// inbound request; instances are never shared across tenants.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	notionVersion string
	token         string
}

func NewClient(cfg config.APIConfig, token string) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	notionVersion := strings.TrimSpace(cfg.NotionVersion)
	if notionVersion == "" {
		notionVersion = defaultNotionAPIRev
	}

	return &Client{
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		baseURL:       baseURL,
		notionVersion: notionVersion,
		token:         strings.TrimSpace(token),
	}
}

// PageParams carries the caller-driven pagination inputs. Cursors are opaque
// upstream values and are passed through verbatim.
type PageParams struct {
	StartCursor string
	PageSize    int
}

func (p PageParams) query() url.Values {
	q := url.Values{}
	if p.StartCursor != "" {
		q.Set("start_cursor", p.StartCursor)
	}
	if size := clampPageSize(p.PageSize); size > 0 {
		q.Set("page_size", strconv.Itoa(size))
	}
	return q
}

func (p PageParams) apply(body map[string]any) {
	if p.StartCursor != "" {
		body["start_cursor"] = p.StartCursor
	}
	if size := clampPageSize(p.PageSize); size > 0 {
		body["page_size"] = size
	}
}

func clampPageSize(size int) int {
	if size <= 0 {
		return 0
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

// SearchParams mirrors the /search request body. Filter and Sort are opaque
// structures forwarded verbatim.
type SearchParams struct {
	Query  string
	Filter map[string]any
	Sort   map[string]any
	Page   PageParams
}

// QueryParams mirrors the /databases/{id}/query body. Filter and Sorts are
// opaque structures forwarded verbatim.
type QueryParams struct {
	Filter map[string]any
	Sorts  []any
	Page   PageParams
}

// Users

func (c *Client) ListUsers(ctx context.Context, page PageParams) (*List[User], error) {
	var out List[User]
	if err := c.get(ctx, "/users", page.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	var out User
	if err := c.get(ctx, "/users/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSelf(ctx context.Context) (*User, error) {
	var out User
	if err := c.get(ctx, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Pages

func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return nil, fmt.Errorf("page ID is required")
	}
	var out Page
	if err := c.get(ctx, "/pages/"+pageID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePage(ctx context.Context, body map[string]any) (*Page, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("page payload is required")
	}
	var out Page
	if err := c.doJSON(ctx, http.MethodPost, "/pages", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePage(ctx context.Context, pageID string, patch map[string]any) (*Page, error) {
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return nil, fmt.Errorf("page ID is required")
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("patch payload is required")
	}
	var out Page
	if err := c.doJSON(ctx, http.MethodPatch, "/pages/"+pageID, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TrashPage(ctx context.Context, pageID string) (*Page, error) {
	return c.UpdatePage(ctx, pageID, map[string]any{"in_trash": true})
}

// GetPageProperty returns the raw property item payload. The response shape
// varies by property kind (single item vs paginated list), so it stays an
// opaque map.
func (c *Client) GetPageProperty(ctx context.Context, pageID, propertyID string, page PageParams) (map[string]any, error) {
	pageID = strings.TrimSpace(pageID)
	propertyID = strings.TrimSpace(propertyID)
	if pageID == "" || propertyID == "" {
		return nil, fmt.Errorf("page ID and property ID are required")
	}
	var out map[string]any
	path := "/pages/" + pageID + "/properties/" + propertyID
	if err := c.get(ctx, path, page.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Databases

func (c *Client) GetDatabase(ctx context.Context, databaseID string) (*Database, error) {
	databaseID = strings.TrimSpace(databaseID)
	if databaseID == "" {
		return nil, fmt.Errorf("database ID is required")
	}
	var out Database
	if err := c.get(ctx, "/databases/"+databaseID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) QueryDatabase(ctx context.Context, databaseID string, params QueryParams) (*List[Page], error) {
	databaseID = strings.TrimSpace(databaseID)
	if databaseID == "" {
		return nil, fmt.Errorf("database ID is required")
	}

	body := map[string]any{}
	if params.Filter != nil {
		body["filter"] = params.Filter
	}
	if params.Sorts != nil {
		body["sorts"] = params.Sorts
	}
	params.Page.apply(body)

	var out List[Page]
	if err := c.doJSON(ctx, http.MethodPost, "/databases/"+databaseID+"/query", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateDatabase(ctx context.Context, body map[string]any) (*Database, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("database payload is required")
	}
	var out Database
	if err := c.doJSON(ctx, http.MethodPost, "/databases", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDatabase(ctx context.Context, databaseID string, patch map[string]any) (*Database, error) {
	databaseID = strings.TrimSpace(databaseID)
	if databaseID == "" {
		return nil, fmt.Errorf("database ID is required")
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("patch payload is required")
	}
	var out Database
	if err := c.doJSON(ctx, http.MethodPatch, "/databases/"+databaseID, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Blocks

func (c *Client) GetBlock(ctx context.Context, blockID string) (*Block, error) {
	blockID = strings.TrimSpace(blockID)
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}
	var out Block
	if err := c.get(ctx, "/blocks/"+blockID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBlock(ctx context.Context, blockID string, patch map[string]any) (*Block, error) {
	blockID = strings.TrimSpace(blockID)
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("patch payload is required")
	}
	var out Block
	if err := c.doJSON(ctx, http.MethodPatch, "/blocks/"+blockID, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBlock(ctx context.Context, blockID string) (*Block, error) {
	blockID = strings.TrimSpace(blockID)
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}
	var out Block
	if err := c.doJSON(ctx, http.MethodDelete, "/blocks/"+blockID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListBlockChildren(ctx context.Context, blockID string, page PageParams) (*List[Block], error) {
	blockID = strings.TrimSpace(blockID)
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}
	var out List[Block]
	if err := c.get(ctx, "/blocks/"+blockID+"/children", page.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AppendBlockChildren(ctx context.Context, blockID string, children []any) (*List[Block], error) {
	blockID = strings.TrimSpace(blockID)
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("children payload is required")
	}
	var out List[Block]
	body := map[string]any{"children": children}
	if err := c.doJSON(ctx, http.MethodPatch, "/blocks/"+blockID+"/children", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search

// Search returns mixed page and database objects, so results stay opaque
// maps rather than being forced into one entity type.
func (c *Client) Search(ctx context.Context, params SearchParams) (*List[map[string]any], error) {
	body := map[string]any{}
	if params.Query != "" {
		body["query"] = params.Query
	}
	if params.Filter != nil {
		body["filter"] = params.Filter
	}
	if params.Sort != nil {
		body["sort"] = params.Sort
	}
	params.Page.apply(body)

	var out List[map[string]any]
	if err := c.doJSON(ctx, http.MethodPost, "/search", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Comments

func (c *Client) ListComments(ctx context.Context, blockID string, page PageParams) (*List[Comment], error) {
	blockID = strings.TrimSpace(blockID)
	if blockID == "" {
		return nil, fmt.Errorf("block ID is required")
	}
	q := page.query()
	q.Set("block_id", blockID)

	var out List[Comment]
	if err := c.get(ctx, "/comments", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateComment(ctx context.Context, body map[string]any) (*Comment, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("comment payload is required")
	}
	var out Comment
	if err := c.doJSON(ctx, http.MethodPost, "/comments", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetComment(ctx context.Context, commentID string) (*Comment, error) {
	commentID = strings.TrimSpace(commentID)
	if commentID == "" {
		return nil, fmt.Errorf("comment ID is required")
	}
	var out Comment
	if err := c.get(ctx, "/comments/"+commentID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Transport

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(data)
	}
	return c.doRequest(ctx, method, path, bodyReader, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader, out any) error {
	if c.token == "" {
		return newAuthenticationError("Notion API token is required")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("authorization", "Bearer "+c.token)
	req.Header.Set("notion-version", c.notionVersion)
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response for %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyResponse(method, path, resp.StatusCode, resp.Header.Get("Retry-After"), respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response for %s %s: %w", method, path, err)
	}
	return nil
}

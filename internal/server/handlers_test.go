package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lox/notion-mcp/internal/config"
)

func newTestServer(upstreamURL, token string) *Server {
	cfg := config.Default()
	cfg.API.BaseURL = upstreamURL
	cfg.API.Token = token
	return New(cfg, hclog.NewNullLogger(), "test")
}

func resultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
	}
	return ""
}

func TestHandleGetPageJSONFormat(t *testing.T) {
	t.Parallel()

	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p1","object":"page","url":"https://notion.so/p1"}`))
	}))
	defer srv.Close()

	s := newTestServer(srv.URL, "config-token")

	result, err := s.CallLocal(context.Background(), "notion_get_page", map[string]any{
		"page_id": "p1",
		"format":  "json",
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(result))
	}
	if gotAuth != "Bearer config-token" {
		t.Fatalf("auth mismatch: %s", gotAuth)
	}
	if gotPath != "/pages/p1" {
		t.Fatalf("path mismatch: %s", gotPath)
	}

	var page map[string]any
	if err := json.Unmarshal([]byte(resultText(result)), &page); err != nil {
		t.Fatalf("json format should round-trip: %v", err)
	}
	if page["id"] != "p1" {
		t.Fatalf("page id mismatch: %v", page["id"])
	}
}

func TestHandleListUsersMarkdownDefault(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"object": "list",
			"results": [{"id": "u1", "object": "user", "name": "Ada", "type": "person"}],
			"has_more": false,
			"next_cursor": null,
			"type": "user"
		}`))
	}))
	defer srv.Close()

	s := newTestServer(srv.URL, "config-token")

	result, err := s.CallLocal(context.Background(), "notion_list_users", map[string]any{})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	text := resultText(result)
	if !strings.Contains(text, "## Users (1)") {
		t.Fatalf("expected markdown table by default: %q", text)
	}
	if !strings.Contains(text, "| u1 | Ada |") {
		t.Fatalf("missing user row: %q", text)
	}
}

func TestTenantTokenOverridesConfigToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","object":"user"}`))
	}))
	defer srv.Close()

	s := newTestServer(srv.URL, "config-token")

	ctx := WithToken(context.Background(), "tenant-token")
	result, err := s.CallLocal(ctx, "notion_get_self", map[string]any{"format": "json"})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(result))
	}
	if gotAuth != "Bearer tenant-token" {
		t.Fatalf("tenant token should win over config token, got %s", gotAuth)
	}
}

func TestMissingTokenProducesAuthErrorWithoutUpstreamCall(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	s := newTestServer(srv.URL, "")

	result, err := s.CallLocal(context.Background(), "notion_list_users", map[string]any{})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(resultText(result), "token is required") {
		t.Fatalf("expected authentication message: %q", resultText(result))
	}
	if calls != 0 {
		t.Fatalf("expected zero upstream calls, got %d", calls)
	}
}

func TestUpstreamErrorIsRenderedNotReclassified(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "15")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := newTestServer(srv.URL, "config-token")

	result, err := s.CallLocal(context.Background(), "notion_get_page", map[string]any{"page_id": "p1"})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}

	var payload struct {
		Error   string `json:"error"`
		Details struct {
			Code              string `json:"code"`
			Retryable         bool   `json:"retryable"`
			RetryAfterSeconds int    `json:"retry_after_seconds"`
		} `json:"details"`
	}
	if err := json.Unmarshal([]byte(resultText(result)), &payload); err != nil {
		t.Fatalf("error payload should be JSON: %v", err)
	}
	if !strings.Contains(payload.Error, "(retryable)") {
		t.Fatalf("missing retryable marker: %q", payload.Error)
	}
	if payload.Details.Code != "rate_limited" || !payload.Details.Retryable || payload.Details.RetryAfterSeconds != 15 {
		t.Fatalf("classification lost in rendering: %+v", payload.Details)
	}
}

func TestRequiredArgumentMissing(t *testing.T) {
	t.Parallel()

	s := newTestServer("http://unreachable.invalid", "config-token")

	result, err := s.CallLocal(context.Background(), "notion_get_page", map[string]any{})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for missing page_id")
	}
}

func TestUnknownToolReturnsError(t *testing.T) {
	t.Parallel()

	s := newTestServer("http://unreachable.invalid", "config-token")

	if _, err := s.CallLocal(context.Background(), "notion_launch_rocket", nil); err == nil {
		t.Fatal("expected unknown tool error")
	}
}

func TestTestConnectionSwallowsFailures(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"object":"error","message":"unauthorized"}`))
	}))
	defer srv.Close()

	s := newTestServer(srv.URL, "bad-token")

	result, err := s.CallLocal(context.Background(), "notion_test_connection", nil)
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatal("connection test must not produce a structured error")
	}
	if !strings.Contains(resultText(result), "Connection failed") {
		t.Fatalf("expected failure message: %q", resultText(result))
	}
}

func TestTestConnectionReportsBotUser(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"bot-1","object":"user","type":"bot","name":"Integration"}`))
	}))
	defer srv.Close()

	s := newTestServer(srv.URL, "good-token")

	result, err := s.CallLocal(context.Background(), "notion_test_connection", nil)
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	text := resultText(result)
	if !strings.Contains(text, "Integration") || !strings.Contains(text, "bot-1") {
		t.Fatalf("expected connectivity summary: %q", text)
	}
}

func TestQueryDatabaseForwardsOpaqueFilter(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() { _ = r.Body.Close() }()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","results":[],"has_more":false,"next_cursor":null}`))
	}))
	defer srv.Close()

	s := newTestServer(srv.URL, "config-token")

	filter := map[string]any{"timestamp": "created_time", "created_time": map[string]any{"past_week": map[string]any{}}}
	result, err := s.CallLocal(context.Background(), "notion_query_database", map[string]any{
		"database_id": "db-1",
		"filter":      filter,
		"cursor":      "cur-1",
		"page_size":   float64(10),
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(result))
	}

	if gotBody["start_cursor"] != "cur-1" {
		t.Fatalf("cursor mismatch: %v", gotBody["start_cursor"])
	}
	gotFilter, _ := gotBody["filter"].(map[string]any)
	if gotFilter["timestamp"] != "created_time" {
		t.Fatalf("filter not forwarded verbatim: %v", gotBody["filter"])
	}
}

func TestTenantTokenFromRequestHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "bearer authorization",
			headers: map[string]string{"Authorization": "Bearer ntn_abc"},
			want:    "ntn_abc",
		},
		{
			name:    "notion-token fallback",
			headers: map[string]string{"Notion-Token": "ntn_xyz"},
			want:    "ntn_xyz",
		},
		{
			name:    "non-bearer authorization falls through",
			headers: map[string]string{"Authorization": "Basic dXNlcg==", "Notion-Token": "ntn_fallback"},
			want:    "ntn_fallback",
		},
		{
			name:    "no headers",
			headers: map[string]string{},
			want:    "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/mcp", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			ctx := tenantTokenFromRequest(context.Background(), r)
			if got := TokenFromContext(ctx); got != tt.want {
				t.Fatalf("token mismatch: got %q, want %q", got, tt.want)
			}
		})
	}
}

package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spyglass/internal/accounts"
	"spyglass/internal/graphql"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func strPtr(s string) *string { return &s }

type fakeSchemaFetcher struct {
	schema *graphql.Schema
	err    error
}

func (f *fakeSchemaFetcher) IntrospectSchema(_ context.Context) (*graphql.Schema, error) {
	return f.schema, f.err
}

type fakeQueryRunner struct {
	raw      json.RawMessage
	err      error
	gotQuery string
	gotVars  map[string]any
}

func (f *fakeQueryRunner) Query(_ context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	f.gotQuery = query
	f.gotVars = variables
	return f.raw, f.err
}

type fakeAccounts struct {
	accountID string
}

func (f *fakeAccounts) ActiveAccount(_ context.Context) (string, bool) {
	return f.accountID, f.accountID != ""
}

func analyticsSchema(extraTypes int) *graphql.Schema {
	types := []graphql.TypeDescriptor{
		{
			Kind:        "OBJECT",
			Name:        "DNSAnalytics",
			Description: "DNS query analytics for a zone",
			Fields: []graphql.FieldDescriptor{
				{Name: "queryCount", Description: "Number of DNS queries", Type: graphql.TypeRef{Kind: "SCALAR", Name: strPtr("Int")}},
			},
		},
	}
	for i := 0; i < extraTypes; i++ {
		types = append(types, graphql.TypeDescriptor{
			Kind: "OBJECT",
			Name: fmt.Sprintf("DNSReport%d", i),
		})
	}
	return &graphql.Schema{Types: types}
}

func toolTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	srv := NewServer(cfg)
	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return srv },
		&mcp.StreamableHTTPOptions{Stateless: true},
	)
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func toolClient(t *testing.T, url string) *mcp.ClientSession {
	t.Helper()
	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &mcp.StreamableClientTransport{Endpoint: url}, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func extractText(result *mcp.CallToolResult) string {
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestServer_ListTools(t *testing.T) {
	ts := toolTestServer(t, Config{Accounts: &fakeAccounts{}})
	session := toolClient(t, ts.URL)

	result, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	names := make(map[string]bool)
	for _, tool := range result.Tools {
		names[tool.Name] = true
	}
	if !names["explore_graphql_schema"] {
		t.Fatal("expected explore_graphql_schema tool")
	}
	if !names["graphql_query"] {
		t.Fatal("expected graphql_query tool")
	}
	if len(result.Tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(result.Tools))
	}
}

func TestExploreSchema_Success(t *testing.T) {
	ts := toolTestServer(t, Config{
		Schema:   &fakeSchemaFetcher{schema: analyticsSchema(0)},
		Accounts: &fakeAccounts{accountID: "acct-1"},
	})
	session := toolClient(t, ts.URL)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "explore_graphql_schema",
		Arguments: map[string]any{"searchTerm": "What DNS analytics fields are available?"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %+v", result.Content)
	}

	text := extractText(result)
	if !strings.HasPrefix(text, "Found 1 matching types (page 1 of 1)") {
		t.Fatalf("unexpected header: %q", text)
	}
	if !strings.Contains(text, "Type: DNSAnalytics") {
		t.Fatalf("expected type section:\n%s", text)
	}
	if !strings.Contains(text, "  - queryCount (Int): Number of DNS queries") {
		t.Fatalf("expected field line:\n%s", text)
	}
	if strings.Contains(text, "For more results") {
		t.Fatalf("no pagination hint expected for a single page:\n%s", text)
	}
}

func TestExploreSchema_Pagination(t *testing.T) {
	// 1 + 11 types matching "dns": 3 pages of 5.
	ts := toolTestServer(t, Config{
		Schema:   &fakeSchemaFetcher{schema: analyticsSchema(11)},
		Accounts: &fakeAccounts{accountID: "acct-1"},
	})
	session := toolClient(t, ts.URL)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "explore_graphql_schema",
		Arguments: map[string]any{"searchTerm": "dns", "page": 2},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	text := extractText(result)
	if !strings.HasPrefix(text, "Found 12 matching types (page 2 of 3)") {
		t.Fatalf("unexpected header: %q", text)
	}
	if !strings.Contains(text, "For more results, request page 3.") {
		t.Fatalf("expected next-page hint:\n%s", text)
	}
}

func TestExploreSchema_PageBeyondLast(t *testing.T) {
	ts := toolTestServer(t, Config{
		Schema:   &fakeSchemaFetcher{schema: analyticsSchema(0)},
		Accounts: &fakeAccounts{accountID: "acct-1"},
	})
	session := toolClient(t, ts.URL)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "explore_graphql_schema",
		Arguments: map[string]any{"searchTerm": "dns", "page": 4},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if result.IsError {
		t.Fatalf("page beyond last is not an error: %+v", result.Content)
	}
	text := extractText(result)
	if text != "Found 1 matching types (page 4 of 1)" {
		t.Fatalf("expected bare header, got %q", text)
	}
}

func TestExploreSchema_NoActiveAccount(t *testing.T) {
	fetcher := &fakeSchemaFetcher{schema: analyticsSchema(0)}
	ts := toolTestServer(t, Config{
		Schema:   fetcher,
		Accounts: &fakeAccounts{},
	})
	session := toolClient(t, ts.URL)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "explore_graphql_schema",
		Arguments: map[string]any{"searchTerm": "dns"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if result.IsError {
		t.Fatalf("missing account is guidance, not an error: %+v", result.Content)
	}
	if got := extractText(result); got != accounts.MissingAccountMessage {
		t.Fatalf("expected fixed guidance message, got %q", got)
	}
}

func TestExploreSchema_NoSearchTerms(t *testing.T) {
	ts := toolTestServer(t, Config{
		Schema:   &fakeSchemaFetcher{schema: analyticsSchema(0)},
		Accounts: &fakeAccounts{accountID: "acct-1"},
	})
	session := toolClient(t, ts.URL)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "explore_graphql_schema",
		Arguments: map[string]any{"searchTerm": "what fields are available?"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if result.IsError {
		t.Fatalf("stopword-only query is guidance, not an error: %+v", result.Content)
	}
	if got := extractText(result); !strings.HasPrefix(got, "Could not identify any search terms") {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestExploreSchema_NoMatches(t *testing.T) {
	ts := toolTestServer(t, Config{
		Schema:   &fakeSchemaFetcher{schema: analyticsSchema(0)},
		Accounts: &fakeAccounts{accountID: "acct-1"},
	})
	session := toolClient(t, ts.URL)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "explore_graphql_schema",
		Arguments: map[string]any{"searchTerm": "loadbalancer pools"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if result.IsError {
		t.Fatalf("no matches is guidance, not an error: %+v", result.Content)
	}
	want := "No data found for: loadbalancer, pools. Try different search terms."
	if got := extractText(result); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExploreSchema_IntrospectionFailure(t *testing.T) {
	ts := toolTestServer(t, Config{
		Schema:   &fakeSchemaFetcher{err: errors.New("graphql endpoint returned status 502: bad gateway")},
		Accounts: &fakeAccounts{accountID: "acct-1"},
	})
	session := toolClient(t, ts.URL)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "explore_graphql_schema",
		Arguments: map[string]any{"searchTerm": "dns"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError for introspection failure")
	}
	if got := extractText(result); !strings.Contains(got, "status 502") {
		t.Fatalf("expected cause in message: %q", got)
	}
}

func TestExploreSchema_MissingSearchTerm(t *testing.T) {
	ts := toolTestServer(t, Config{
		Schema:   &fakeSchemaFetcher{schema: analyticsSchema(0)},
		Accounts: &fakeAccounts{accountID: "acct-1"},
	})
	session := toolClient(t, ts.URL)

	// The SDK validates required fields before the handler runs.
	_, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "explore_graphql_schema",
		Arguments: map[string]any{},
	})
	if err == nil {
		t.Fatal("expected error for missing required searchTerm")
	}
}

func TestGraphQLQuery_Success(t *testing.T) {
	runner := &fakeQueryRunner{raw: json.RawMessage(`{"data":{"viewer":{"zones":[]}}}`)}
	ts := toolTestServer(t, Config{
		Queries:  runner,
		Accounts: &fakeAccounts{accountID: "acct-1"},
	})
	session := toolClient(t, ts.URL)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "graphql_query",
		Arguments: map[string]any{"query": "query ($accountId: String!) { viewer { zones } }"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %+v", result.Content)
	}

	if runner.gotVars["accountId"] != "acct-1" {
		t.Fatalf("expected accountId injected, got %v", runner.gotVars)
	}
	if !strings.Contains(runner.gotQuery, "viewer") {
		t.Fatalf("query not passed through: %q", runner.gotQuery)
	}

	text := extractText(result)
	if !strings.Contains(text, "\n") || !strings.Contains(text, "\"viewer\"") {
		t.Fatalf("expected pretty-printed JSON, got %q", text)
	}
}

func TestGraphQLQuery_NoActiveAccount(t *testing.T) {
	runner := &fakeQueryRunner{raw: json.RawMessage(`{}`)}
	ts := toolTestServer(t, Config{
		Queries:  runner,
		Accounts: &fakeAccounts{},
	})
	session := toolClient(t, ts.URL)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "graphql_query",
		Arguments: map[string]any{"query": "query { viewer }"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if got := extractText(result); got != accounts.MissingAccountMessage {
		t.Fatalf("expected fixed guidance message, got %q", got)
	}
	if runner.gotQuery != "" {
		t.Fatal("query must not execute without an active account")
	}
}

func TestGraphQLQuery_EmptyQuery(t *testing.T) {
	ts := toolTestServer(t, Config{
		Queries:  &fakeQueryRunner{},
		Accounts: &fakeAccounts{accountID: "acct-1"},
	})
	session := toolClient(t, ts.URL)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "graphql_query",
		Arguments: map[string]any{"query": "   "},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError for blank query")
	}
}

func TestGraphQLQuery_ExecutionFailure(t *testing.T) {
	ts := toolTestServer(t, Config{
		Queries:  &fakeQueryRunner{err: errors.New("graphql endpoint returned status 400: syntax error")},
		Accounts: &fakeAccounts{accountID: "acct-1"},
	})
	session := toolClient(t, ts.URL)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "graphql_query",
		Arguments: map[string]any{"query": "query { broken"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError for failed execution")
	}
	if got := extractText(result); !strings.Contains(got, "status 400") {
		t.Fatalf("expected cause in message: %q", got)
	}
}

// Package mcpserver exposes the Spyglass MCP tools: free-text search over
// the introspected GraphQL analytics schema and raw query passthrough.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"spyglass/internal/accounts"
	"spyglass/internal/explore"
	"spyglass/internal/graphql"
	"spyglass/pkg/logging"
	"spyglass/pkg/version"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SchemaFetcher introspects the remote GraphQL schema.
type SchemaFetcher interface {
	IntrospectSchema(ctx context.Context) (*graphql.Schema, error)
}

// QueryRunner executes raw GraphQL queries against the remote endpoint.
type QueryRunner interface {
	Query(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error)
}

// AccountResolver resolves the active account for an invocation.
type AccountResolver interface {
	ActiveAccount(ctx context.Context) (string, bool)
}

// Config configures the Spyglass MCP server.
type Config struct {
	Schema   SchemaFetcher
	Queries  QueryRunner
	Accounts AccountResolver
	Logger   logging.Logger
}

// NewServer creates an MCP server exposing the schema exploration tools.
func NewServer(cfg Config) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "spyglass",
		Version: version.Version,
	}, nil)

	registerExploreSchema(srv, cfg)
	registerGraphQLQuery(srv, cfg)

	return srv
}

// --- explore_graphql_schema ---

type exploreSchemaInput struct {
	SearchTerm string `json:"searchTerm" jsonschema:"required" jsonschema_description:"Free-text description of the data you are looking for (e.g. 'dns analytics' or 'firewall events')"`
	Page       int    `json:"page,omitempty" jsonschema_description:"Result page to return (default 1, 5 types per page)"`
}

func registerExploreSchema(srv *mcp.Server, cfg Config) {
	mcp.AddTool(srv,
		&mcp.Tool{
			Name:        "explore_graphql_schema",
			Description: "Search the GraphQL analytics API schema for types and fields matching a free-text query. Returns paginated human-readable descriptions. Use graphql_query to run a query once you know what to ask for.",
		},
		func(ctx context.Context, _ *mcp.CallToolRequest, args exploreSchemaInput) (*mcp.CallToolResult, any, error) {
			return handleExploreSchema(ctx, args, cfg)
		},
	)
}

func handleExploreSchema(ctx context.Context, args exploreSchemaInput, cfg Config) (result *mcp.CallToolResult, _ any, err error) {
	// The tool boundary never raises past this point; anything unexpected
	// in fetch/match/format becomes an error-text response.
	defer func() {
		if r := recover(); r != nil {
			if cfg.Logger != nil {
				cfg.Logger.WithField("panic", r).Error("explore_graphql_schema panicked")
			}
			result, _, err = toolError(fmt.Sprintf("Schema search failed: %v", r))
		}
	}()

	if _, ok := cfg.Accounts.ActiveAccount(ctx); !ok {
		toolCallsTotal.WithLabelValues("explore_graphql_schema", "no_account").Inc()
		return toolText(accounts.MissingAccountMessage)
	}

	start := time.Now()
	schema, err := cfg.Schema.IntrospectSchema(ctx)
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.WithError(err).Warn("Schema introspection failed")
		}
		toolCallsTotal.WithLabelValues("explore_graphql_schema", "error").Inc()
		return toolError(fmt.Sprintf("Failed to fetch the GraphQL schema: %v", err))
	}

	terms := explore.ExtractTerms(args.SearchTerm)
	if len(terms) == 0 {
		toolCallsTotal.WithLabelValues("explore_graphql_schema", "no_terms").Inc()
		return toolText("Could not identify any search terms in your query. Try naming a specific dataset, type, or field (e.g. 'dns analytics' or 'http requests').")
	}

	matches := explore.MatchTypes(schema, terms)
	searchDuration.Observe(time.Since(start).Seconds())
	searchMatchedTypes.Observe(float64(len(matches)))
	if cfg.Logger != nil {
		cfg.Logger.WithFields(logging.Fields{
			"terms":   terms,
			"matches": len(matches),
		}).Debug("Schema search")
	}

	if len(matches) == 0 {
		toolCallsTotal.WithLabelValues("explore_graphql_schema", "no_matches").Inc()
		return toolText(fmt.Sprintf("No data found for: %s. Try different search terms.", strings.Join(terms, ", ")))
	}

	toolCallsTotal.WithLabelValues("explore_graphql_schema", "ok").Inc()
	return toolText(explore.RenderSearchResults(matches, args.Page))
}

// --- graphql_query ---

type graphqlQueryInput struct {
	Query string `json:"query" jsonschema:"required" jsonschema_description:"GraphQL query to execute. The active account ID is injected as the accountId variable."`
}

func registerGraphQLQuery(srv *mcp.Server, cfg Config) {
	mcp.AddTool(srv,
		&mcp.Tool{
			Name:        "graphql_query",
			Description: "Execute a GraphQL query against the analytics API, scoped to the active account. Returns the raw JSON response. Use explore_graphql_schema first to discover available types and fields.",
		},
		func(ctx context.Context, _ *mcp.CallToolRequest, args graphqlQueryInput) (*mcp.CallToolResult, any, error) {
			return handleGraphQLQuery(ctx, args, cfg)
		},
	)
}

func handleGraphQLQuery(ctx context.Context, args graphqlQueryInput, cfg Config) (result *mcp.CallToolResult, _ any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if cfg.Logger != nil {
				cfg.Logger.WithField("panic", r).Error("graphql_query panicked")
			}
			result, _, err = toolError(fmt.Sprintf("Query execution failed: %v", r))
		}
	}()

	accountID, ok := cfg.Accounts.ActiveAccount(ctx)
	if !ok {
		toolCallsTotal.WithLabelValues("graphql_query", "no_account").Inc()
		return toolText(accounts.MissingAccountMessage)
	}

	query := strings.TrimSpace(args.Query)
	if query == "" {
		toolCallsTotal.WithLabelValues("graphql_query", "error").Inc()
		return toolError("query is required")
	}

	raw, err := cfg.Queries.Query(ctx, query, map[string]any{"accountId": accountID})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.WithError(err).Warn("GraphQL query failed")
		}
		toolCallsTotal.WithLabelValues("graphql_query", "error").Inc()
		return toolError(fmt.Sprintf("GraphQL query failed: %v", err))
	}

	toolCallsTotal.WithLabelValues("graphql_query", "ok").Inc()
	return toolText(prettyJSON(raw))
}

// --- helpers ---

func toolText(message string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
	}, nil, nil
}

func toolError(message string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: true,
	}, nil, nil
}

// prettyJSON indents a raw JSON payload for readability. Payloads that do
// not parse are returned verbatim.
func prettyJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"spyglass/pkg/clients"
	"spyglass/pkg/ctxkeys"
	"spyglass/pkg/logging"
)

// Client talks to the remote GraphQL analytics endpoint.
// The schema is fetched fresh on every call; results are never cached, so
// concurrent tool invocations share no mutable state.
type Client struct {
	endpoint   string
	apiToken   string
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient creates a GraphQL client for the given endpoint. The apiToken is
// a fallback used when the request context carries no bearer token.
func NewClient(endpoint, apiToken string, logger logging.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: clients.DefaultTransport(),
		},
		logger: logger,
	}
}

// introspectionQuery requests the type and field surface needed for schema
// search. One ofType level is enough: field display resolves a single wrapper.
const introspectionQuery = `
query IntrospectSchema {
  __schema {
    types {
      name
      kind
      description
      fields {
        name
        description
        type {
          name
          kind
          ofType {
            name
            kind
          }
        }
      }
    }
  }
}
`

// IntrospectSchema fetches the schema document from the GraphQL endpoint.
func (c *Client) IntrospectSchema(ctx context.Context) (*Schema, error) {
	body, err := c.post(ctx, map[string]any{"query": introspectionQuery})
	if err != nil {
		return nil, err
	}

	var result IntrospectionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode introspection response: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("introspection error: %s", result.Errors[0].Message)
	}

	if c.logger != nil {
		c.logger.WithField("types", len(result.Data.Schema.Types)).Debug("Schema introspected")
	}

	return &result.Data.Schema, nil
}

// Query executes an arbitrary GraphQL query with the given variables and
// returns the raw response payload. No validation is performed on the query.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	payload := map[string]any{"query": query}
	if len(variables) > 0 {
		payload["variables"] = variables
	}
	return c.post(ctx, payload)
}

func (c *Client) post(ctx context.Context, payload map[string]any) (json.RawMessage, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.bearerToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graphql request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("graphql endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// bearerToken prefers the request-scoped token so concurrent sessions with
// different credentials stay independent.
func (c *Client) bearerToken(ctx context.Context) string {
	if token := ctxkeys.GetAPIToken(ctx); token != "" {
		return token
	}
	return c.apiToken
}

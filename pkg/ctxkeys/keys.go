// Package ctxkeys defines typed context keys to avoid SA1029 lint warnings
// and prevent key collisions across packages.
package ctxkeys

import "context"

// Key is a typed context key to prevent collisions.
type Key string

// Auth context keys
const (
	KeyAccountID Key = "account_id"
	KeyAPIToken  Key = "api_token"
)

// Request context keys
const (
	KeyClientIP    Key = "client_ip"
	KeyRequestPath Key = "request_path"
)

// GetAccountID extracts account_id from context.
func GetAccountID(ctx context.Context) string {
	if v, ok := ctx.Value(KeyAccountID).(string); ok {
		return v
	}
	return ""
}

// GetAPIToken extracts api_token from context.
func GetAPIToken(ctx context.Context) string {
	if v, ok := ctx.Value(KeyAPIToken).(string); ok {
		return v
	}
	return ""
}

// GetClientIP extracts client_ip from context.
func GetClientIP(ctx context.Context) string {
	if v, ok := ctx.Value(KeyClientIP).(string); ok {
		return v
	}
	return ""
}

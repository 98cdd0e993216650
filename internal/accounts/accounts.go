// Package accounts resolves the active account for a tool invocation.
// Account listing and selection live outside this service; this boundary
// only answers "which account is active right now".
package accounts

import (
	"context"

	"spyglass/pkg/ctxkeys"
)

// MissingAccountMessage is the fixed guidance returned when no account is
// active. The named tools are provided by the account management service.
const MissingAccountMessage = "No active account set. Use the accounts_list tool to see your accounts, then set_active_account to choose one."

// Resolver resolves the active account: the request context first (set from
// the X-Account-ID header by the HTTP layer), then the configured default.
type Resolver struct {
	defaultAccountID string
}

// NewResolver creates a resolver with an optional default account.
func NewResolver(defaultAccountID string) *Resolver {
	return &Resolver{defaultAccountID: defaultAccountID}
}

// ActiveAccount returns the active account identifier, or false when none
// is set. Absence is a precondition state, not an error.
func (r *Resolver) ActiveAccount(ctx context.Context) (string, bool) {
	if id := ctxkeys.GetAccountID(ctx); id != "" {
		return id, true
	}
	if r.defaultAccountID != "" {
		return r.defaultAccountID, true
	}
	return "", false
}

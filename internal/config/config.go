package config

import (
	"strings"

	"spyglass/pkg/config"
)

// Config stores environment configuration for Spyglass.
type Config struct {
	Port             string
	GraphQLEndpoint  string
	APIToken         string
	DefaultAccountID string
}

// LoadConfig loads the Spyglass configuration from environment variables.
func LoadConfig() Config {
	return Config{
		Port:             config.GetEnv("PORT", "18021"),
		GraphQLEndpoint:  config.GetEnv("GRAPHQL_ENDPOINT", "https://api.cloudflare.com/client/v4/graphql"),
		APIToken:         strings.TrimSpace(config.GetEnv("GRAPHQL_API_TOKEN", "")),
		DefaultAccountID: strings.TrimSpace(config.GetEnv("DEFAULT_ACCOUNT_ID", "")),
	}
}

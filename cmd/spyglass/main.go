package main

import (
	"context"
	"net/http"
	"strings"

	"spyglass/internal/accounts"
	spyglassconfig "spyglass/internal/config"
	"spyglass/internal/graphql"
	"spyglass/internal/mcpserver"
	"spyglass/pkg/config"
	"spyglass/pkg/ctxkeys"
	"spyglass/pkg/logging"
	"spyglass/pkg/monitoring"
	"spyglass/pkg/server"
	"spyglass/pkg/version"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("spyglass")

	// Load environment variables
	config.LoadEnv(logger)

	logger.Info("Starting Spyglass (GraphQL Analytics Schema Explorer)")

	cfg := spyglassconfig.LoadConfig()

	// Setup monitoring
	healthChecker := monitoring.NewHealthChecker("spyglass", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("spyglass", version.Version, version.GitCommit)

	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"GRAPHQL_ENDPOINT": cfg.GraphQLEndpoint,
	}))
	healthChecker.AddCheck("graphql", monitoring.HTTPServiceHealthCheck("graphql", cfg.GraphQLEndpoint))

	graphqlClient := graphql.NewClient(cfg.GraphQLEndpoint, cfg.APIToken, logger)
	accountResolver := accounts.NewResolver(cfg.DefaultAccountID)
	if cfg.DefaultAccountID == "" {
		logger.Warn("DEFAULT_ACCOUNT_ID not set - callers must supply X-Account-ID")
	}

	mcpSrv := mcpserver.NewServer(mcpserver.Config{
		Schema:   graphqlClient,
		Queries:  graphqlClient,
		Accounts: accountResolver,
		Logger:   logger,
	})

	// Setup router with unified monitoring (health/metrics only)
	router := server.SetupServiceRouter(logger, "spyglass", healthChecker, metricsCollector)

	// Tool invocations carry per-request credentials; sessions are
	// independent, so the handler runs stateless.
	mcpHandler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return mcpSrv },
		&mcp.StreamableHTTPOptions{Stateless: true},
	)
	router.Any("/mcp/*path", gin.WrapH(withRequestContext(mcpHandler)))

	// Start HTTP server with graceful shutdown
	serverConfig := server.DefaultConfig("spyglass", cfg.Port)
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server startup failed")
	}
}

// withRequestContext copies the bearer token and account selection headers
// into the request context for the tool handlers.
func withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "); token != "" && token != r.Header.Get("Authorization") {
			ctx = context.WithValue(ctx, ctxkeys.KeyAPIToken, token)
		}
		if accountID := strings.TrimSpace(r.Header.Get("X-Account-ID")); accountID != "" {
			ctx = context.WithValue(ctx, ctxkeys.KeyAccountID, accountID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

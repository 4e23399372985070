// Package main provides modelgatectl, the CLI for the modelgate server.
//
// modelgate serves a permission-gated CRUD interface over a single Model
// resource. Access requires a signed-in session; each action requires a
// named permission granted to the user.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: resource and session endpoint handlers
//   - pkg/server/middleware: session authentication, metrics, method override
//   - pkg/server/store: persistence interfaces and gorm implementations
//   - pkg/server/views: HTML page rendering
//   - pkg/model: database models and permission names
//   - pkg/flash: one-shot payloads carried across redirects
//   - pkg/db: database connection utilities
//   - pkg/audit: audit logging
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Generate a session signing key
//	export MODELGATE_SESSION_KEY="$(modelgatectl session-key generate)"
//
//	# Run database migrations
//	modelgatectl db migrate
//
//	# Create a user and grant permissions
//	modelgatectl user create admin
//	modelgatectl user grant admin all
//
//	# Start the server
//	modelgatectl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - MODELGATE_SESSION_KEY: Base64-encoded key for signing session tokens
//   - MODELGATE_LOG_LEVEL: Log level (debug, info, warn, error)
//   - MODELGATE_PORT: Server port (default: 8000)
package main

// Package server provides the HTTP server for modelgate.
//
// This package implements the core HTTP server that serves the model
// resource pages. It uses gorilla/mux for routing and provides middleware
// for session authentication, metrics, and form method override.
//
// # Server Setup
//
//	s := server.NewServer(records, authz, users, db, host, port)
//	endpoints.RegisterAll(s, session, view)
//	if err := s.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Records: record persistence
//   - Authz: per-user permission checks
//   - Users: principal lookup and credential checks
//   - Router: HTTP request router
//   - DB: database connection
//
// # Endpoints
//
// Endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(s, session, view)
//
// This registers the resource pages and the session endpoints:
//
//   - /model - list, create, show, edit, update, delete
//   - /login, /logout - session management
//   - /status - health check
//   - /metrics - Prometheus metrics
//   - /docs - rendered usage documentation
package server

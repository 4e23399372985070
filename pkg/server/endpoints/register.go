package endpoints

import (
	"github.com/modelgate/modelgate/pkg/server"
	"github.com/modelgate/modelgate/pkg/server/middleware"
	"github.com/modelgate/modelgate/pkg/server/views"
)

// RegisterAll registers all endpoints on the server
func RegisterAll(srv *server.Server, session *middleware.SessionAuthenticator, view *views.View) {
	srv.Router.Use(middleware.Metrics)

	RegisterLoginEndpoints(srv, session, view)
	RegisterModelEndpoints(srv, session, view)
	RegisterStatusEndpoints(srv)
	RegisterDocsEndpoints(srv)
}

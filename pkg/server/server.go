package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/modelgate/modelgate/pkg/server/middleware"
	"github.com/modelgate/modelgate/pkg/server/store"
)

type Server struct {
	Records store.RecordsStore
	Authz   store.AuthzStore
	Users   store.UsersStore
	Router  *mux.Router
	DB      *gorm.DB
	srv     *http.Server
}

func NewServer(
	records store.RecordsStore,
	authz store.AuthzStore,
	users store.UsersStore,
	db *gorm.DB,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, middleware.MethodOverride(router)),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Records: records,
		Authz:   authz,
		Users:   users,
		Router:  router,
		DB:      db,
		srv:     srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests before stopping the listener.
func (s Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

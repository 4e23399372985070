package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/modelgate/modelgate/pkg/config"
	"github.com/modelgate/modelgate/pkg/db"
	"github.com/modelgate/modelgate/pkg/server"
	"github.com/modelgate/modelgate/pkg/server/endpoints"
	"github.com/modelgate/modelgate/pkg/server/middleware"
	gormstore "github.com/modelgate/modelgate/pkg/server/store/gorm"
	"github.com/modelgate/modelgate/pkg/server/views"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the modelgate application server",
	Long: `Run the modelgate application server

To run the server requires the environment variables MODELGATE_SESSION_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		sessionKeyB64, ok := os.LookupEnv("MODELGATE_SESSION_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "MODELGATE_SESSION_KEY environment variable is required")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		sessionKey, err := base64.StdEncoding.DecodeString(sessionKeyB64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad MODELGATE_SESSION_KEY:", err)
			os.Exit(1)
		}

		cfg := config.Get()
		if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			logrus.SetLevel(level)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			logrus.Info("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		records := gormstore.NewRecordsStore(database)
		authz := gormstore.NewAuthzStore(database)
		users := gormstore.NewUsersStore(database)

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(records, authz, users, database, host, port)

		session := middleware.NewSessionAuthenticator(
			users,
			sessionKey,
			cfg.SessionTTL(),
			cfg.SessionCookieSecure,
		)

		view, err := views.New()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to parse templates:", err)
			os.Exit(1)
		}

		endpoints.RegisterAll(s, session, view)

		go func() {
			logrus.Infof("Running server at http://%s:%s...", host, port)
			if err := s.Start(); err != nil {
				logrus.WithError(err).Info("Server stopped")
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logrus.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			logrus.WithError(err).Error("Shutdown failed")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	cfg := config.Get()
	serverCmd.Flags().StringP("port", "p", strconv.Itoa(cfg.Port), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", cfg.BindAddress, "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}

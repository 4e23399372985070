package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modelgate/modelgate/pkg/db"
	gormstore "github.com/modelgate/modelgate/pkg/server/store/gorm"
)

// userListCmd represents the user list command
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users and their permissions",
	Long:  `List all users with the permissions they hold.`,
	Run: func(cmd *cobra.Command, args []string) {
		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		users := gormstore.NewUsersStore(database)
		authz := gormstore.NewAuthzStore(database)

		all, err := users.ListUsers()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to list users:", err)
			os.Exit(1)
		}

		for _, user := range all {
			permissions, err := authz.Permissions(user.ID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to fetch permissions for %s: %v\n", user.Login, err)
				os.Exit(1)
			}
			fmt.Printf("%s\t%s\t[%s]\n", user.ID, user.Login, strings.Join(permissions, ", "))
		}
	},
}

func init() {
	userCmd.AddCommand(userListCmd)
}

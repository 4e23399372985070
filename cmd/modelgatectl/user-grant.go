package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modelgate/modelgate/pkg/db"
	"github.com/modelgate/modelgate/pkg/model"
	gormstore "github.com/modelgate/modelgate/pkg/server/store/gorm"
)

// userGrantCmd represents the user grant command
var userGrantCmd = &cobra.Command{
	Use:   "grant <login> <permission>...",
	Short: "Grant permissions to a user",
	Long: `Grant one or more permissions to a user.

Valid permissions: ` + strings.Join(model.AllPermissions, ", ") + `

Use "all" to grant every permission.

Example:
  modelgatectl user grant alice model_access model_show
  modelgatectl user grant admin all`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		login := args[0]
		permissions := args[1:]

		if len(permissions) == 1 && permissions[0] == "all" {
			permissions = model.AllPermissions
		}

		valid := make(map[string]bool, len(model.AllPermissions))
		for _, p := range model.AllPermissions {
			valid[p] = true
		}
		for _, p := range permissions {
			if !valid[p] {
				fmt.Fprintf(os.Stderr, "Unknown permission: %s\n", p)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		users := gormstore.NewUsersStore(database)
		user, err := users.FetchUserByLogin(login)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to fetch user:", err)
			os.Exit(1)
		}

		for _, permission := range permissions {
			if err := users.GrantPermission(user.ID, permission); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to grant %s: %v\n", permission, err)
				os.Exit(1)
			}
			fmt.Printf("Granted %s to %s\n", permission, login)
		}
	},
}

func init() {
	userCmd.AddCommand(userGrantCmd)
}

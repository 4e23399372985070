package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modelgate/modelgate/pkg/db"
	gormstore "github.com/modelgate/modelgate/pkg/server/store/gorm"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <login>",
	Short: "Create a user",
	Long: `Create a user.

If no password is given, a random one is generated and printed.

Example:
  modelgatectl user create alice
  modelgatectl user create alice --password s3cret`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		login := args[0]
		password, _ := cmd.Flags().GetString("password")

		generated := false
		if password == "" {
			raw := make([]byte, 18)
			if _, err := rand.Read(raw); err != nil {
				fmt.Fprintln(os.Stderr, "Failed to generate password:", err)
				os.Exit(1)
			}
			password = base64.URLEncoding.EncodeToString(raw)
			generated = true
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		users := gormstore.NewUsersStore(database)
		user, err := users.CreateUser(login, []byte(password))
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to create user:", err)
			os.Exit(1)
		}

		fmt.Printf("Created user %s (id: %s)\n", user.Login, user.ID)
		if generated {
			fmt.Printf("Password: %s\n", password)
		}
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().String("password", "", "password for the new user (generated if not set)")
}

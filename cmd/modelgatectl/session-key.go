package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// sessionKeyCmd represents the session-key command
var sessionKeyCmd = &cobra.Command{
	Use:   "session-key",
	Short: "Manage the session signing key",
	Long:  `Manage the session signing key`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'session-key' requires a subcommand generate")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// sessionKeyGenerateCmd represents the session-key generate command
var sessionKeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a session signing key",
	Long: `
Generate a session signing key

Use this command to generate a new Base64-encoded 256 bit session signing key. Once generated, this key should be placed into the environment of
the modelgate server. It will be used to sign the session tokens issued to signed-in users.

Example:

$ export MODELGATE_SESSION_KEY="$(modelgatectl session-key generate)"
`,
	Run: func(cmd *cobra.Command, args []string) {
		bytes := make([]byte, 32)
		if _, err := rand.Read(bytes); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to generate key:", err)
			os.Exit(1)
		}
		fmt.Printf("%s", base64.StdEncoding.Strict().EncodeToString(bytes))
	},
}

func init() {
	rootCmd.AddCommand(sessionKeyCmd)
	sessionKeyCmd.AddCommand(sessionKeyGenerateCmd)
}

package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command for modelgatectl
var rootCmd = &cobra.Command{
	Use:   "modelgatectl",
	Short: "modelgatectl manages the modelgate server",
	Long:  `modelgatectl manages the modelgate server: run it, migrate its database, and administer users and permissions.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

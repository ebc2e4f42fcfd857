package main

import (
	"fmt"
	"os"

	"github.com/clearstudy-ai/clearstudy/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "clearstudy",
		Short: "Clearstudy CLI - Turn study material into notes",
		Long: `Clearstudy CLI extracts text from study material, generates study
notes, and answers questions about them.

Environment variables:
  CLEARSTUDY_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.AddCommand(client.ProcessCmd())
	rootCmd.AddCommand(client.GenerateCmd())
	rootCmd.AddCommand(client.ChatCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

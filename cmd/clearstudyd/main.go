package main

import (
	"fmt"
	"os"

	"github.com/clearstudy-ai/clearstudy/internal/cli/admin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clearstudyd",
		Short: "Clearstudy daemon",
		Long:  "Clearstudy daemon for running the study-notes API server",
	}

	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

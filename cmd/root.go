package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bridal-service",
	Short: "Wedding plan listing and search service",
	Long:  "HTTP and gRPC service for wedding vendor plans, provider and user accounts, favorites and inquiries.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

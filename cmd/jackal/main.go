package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "jackal",
		Short: "A compiler front end for the Jack language",
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

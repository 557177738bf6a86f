package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "filing-sentiment",
	Short: "A CLI for managing the filing sentiment services",
	Long:  `Filing Sentiment analyzes the MD&A section of regulatory filings and tracks per-ticker sentiment trends.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}

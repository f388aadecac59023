package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "quotectl",
	Short:         "Offline tools for treatment pricing",
	Long:          "Convert pricing grids between CSV and XLSX, export grids from the database and price a treatment from a JSON file.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

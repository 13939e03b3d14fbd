package tokbench

import "github.com/spf13/cobra"

// listCmd groups commands that enumerate things.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing resources",
}

func init() {
	rootCmd.AddCommand(listCmd)
}

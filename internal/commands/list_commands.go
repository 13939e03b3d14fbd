// internal/commands/list_commands.go
package tokbench

import (
	"github.com/spf13/cobra"
)

// commandsCmd implements 'list commands', which prints the command tree.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands",
	Long:  `The 'commands' subcommand lists every command as an indented tree with its short description, marking the benchmark modes each benchmark command measures.`,
	Run: func(cmd *cobra.Command, args []string) {
		ListCommands(cmd.OutOrStdout(), collectCommandData(rootCmd, "", 0))
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
}

// collectCommandData walks the command tree depth first, skipping hidden,
// help and completion commands.
func collectCommandData(cmd *cobra.Command, parentPath string, depth int) []CommandInfo {
	if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	path := cmd.Name()
	if parentPath != "" {
		path = parentPath + " " + cmd.Name()
	}
	all := []CommandInfo{{
		Path:        path,
		Description: cmd.Short,
		Depth:       depth,
		Group:       !cmd.Runnable(),
		Modes:       cmd.Annotations[modesAnnotation],
	}}
	for _, sub := range cmd.Commands() {
		all = append(all, collectCommandData(sub, path, depth+1)...)
	}
	return all
}

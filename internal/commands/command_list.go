package tokbench

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// modesAnnotation is the cobra annotation naming the benchmark modes a command runs.
const modesAnnotation = "modes"

var groupStyle = lipgloss.NewStyle().Bold(true)

// CommandInfo describes one command in the listing.
type CommandInfo struct {
	Path        string
	Description string
	Depth       int
	// Group is set for commands that only hold subcommands.
	Group bool
	// Modes lists the benchmark modes the command measures, if any.
	Modes string
}

// ListCommands prints the command tree with groups in bold and, for benchmark
// commands, the modes they measure.
func ListCommands(out io.Writer, commands []CommandInfo) {
	width := 0
	for _, c := range commands {
		width = max(width, 2*c.Depth+lipgloss.Width(c.Path))
	}

	fmt.Fprintln(out, "Commands and Subcommands:")
	for _, c := range commands {
		path := strings.Repeat("  ", c.Depth) + c.Path
		pad := strings.Repeat(" ", width-lipgloss.Width(path)+2)
		if c.Group {
			path = groupStyle.Render(path)
		}
		line := "  " + path + pad + c.Description
		if c.Modes != "" {
			line += " [" + c.Modes + "]"
		}
		fmt.Fprintln(out, line)
	}
}

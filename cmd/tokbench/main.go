// cmd/tokbench/main.go
package main

import (
	tokbench "github.com/mwiater/tokbench/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = tokbench.SetVersionInfo
	executeCmd     = tokbench.Execute
)

// main injects build information and hands control to the cobra root command.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}

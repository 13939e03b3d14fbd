package tokbench

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmdRejectsUnknownCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"nonexistent"}, want: `unknown command "nonexistent" for "tokbench"`},
		{args: []string{"--no-such-flag"}, want: "unknown flag: --no-such-flag"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetErr(&buf)
		rootCmd.SetArgs(tt.args)

		if _, err := rootCmd.ExecuteC(); err == nil {
			t.Fatalf("%v: expected an error", tt.args)
		}
		if !strings.Contains(buf.String(), tt.want) {
			t.Fatalf("%v: expected output to contain %q, got %q", tt.args, tt.want, buf.String())
		}
	}
	rootCmd.SetArgs([]string{})
}

func TestSetVersionInfo(t *testing.T) {
	prevVersion, prevCommit, prevDate := appVersion, appCommit, appDate
	t.Cleanup(func() { SetVersionInfo(prevVersion, prevCommit, prevDate) })

	SetVersionInfo("1.2.3", "abc123", "2026-01-02")
	if appVersion != "1.2.3" || appCommit != "abc123" || appDate != "2026-01-02" {
		t.Fatalf("unexpected version info: %s %s %s", appVersion, appCommit, appDate)
	}
}

package tokbench

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/tokbench/internal/appconfig"
	"github.com/mwiater/tokbench/internal/logging"
)

var resettableFlags = []string{
	"debug", "logFile", "corpus", "encoding", "normalization", "batch-size", "batch-workers",
	"allow-special", "sample-size", "measurement-time", "warm-up-time", "max-iterations",
}

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		flag = benchmarkCmd.PersistentFlags().Lookup(cmdFlag)
	}
	if flag == nil {
		return
	}
	_ = flag.Value.Set(flag.DefValue)
	flag.Changed = false
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// useConfig points the root command at configPath and a temporary log file.
func useConfig(t *testing.T, configPath string) {
	t.Helper()
	prevCfgFile := cfgFile
	cfgFile = configPath
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		currentConfig = nil
		for _, name := range resettableFlags {
			resetFlag(name)
		}
	})
	t.Cleanup(func() { _ = logging.Close() })

	for _, name := range resettableFlags {
		resetFlag(name)
	}
	_ = rootCmd.PersistentFlags().Set("logFile", filepath.Join(t.TempDir(), "tokbench.log"))
}

func TestPersistentPreRunEUsesFlagValues(t *testing.T) {
	configPath := writeTempConfig(t, `{"batch_size": 50, "sample_size": 7, "encoding": "o200k_base"}`)
	useConfig(t, configPath)

	_ = benchmarkCmd.PersistentFlags().Set("batch-size", "10")
	_ = benchmarkCmd.PersistentFlags().Set("measurement-time", "250ms")
	_ = benchmarkCmd.PersistentFlags().Set("normalization", "nfkc")

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil || cfg.ConfigPath != configPath {
		t.Fatalf("expected config loaded with path %s, got %+v", configPath, cfg)
	}
	if cfg.BatchSize != 10 {
		t.Fatalf("expected flag to override config batch size, got %d", cfg.BatchSize)
	}
	if cfg.SampleSize != 7 || cfg.EncodingName() != "o200k_base" {
		t.Fatalf("expected config values to survive, got %+v", cfg)
	}
	if cfg.MeasurementTime != 250*time.Millisecond {
		t.Fatalf("expected measurement time from flag, got %s", cfg.MeasurementTime)
	}
	if cfg.WarmUpTime != 3*time.Second {
		t.Fatalf("expected default warm-up time, got %s", cfg.WarmUpTime)
	}
	if cfg.Normalization != "nfkc" {
		t.Fatalf("expected normalization from flag, got %q", cfg.Normalization)
	}
}

func TestPersistentPreRunERejectsSchemaViolations(t *testing.T) {
	useConfig(t, writeTempConfig(t, `{"batch_size": "big"}`))

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err == nil {
		t.Fatalf("expected schema error")
	}
}

func TestPersistentPreRunERejectsInvalidValues(t *testing.T) {
	useConfig(t, writeTempConfig(t, "{}"))
	_ = benchmarkCmd.PersistentFlags().Set("batch-workers", "-2")

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err == nil {
		t.Fatalf("expected validation error for negative batch workers")
	}
}

func TestPersistentPreRunERejectsZeroSizes(t *testing.T) {
	for _, flag := range []string{"batch-size", "sample-size"} {
		t.Run(flag, func(t *testing.T) {
			useConfig(t, writeTempConfig(t, "{}"))
			_ = benchmarkCmd.PersistentFlags().Set(flag, "0")

			if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err == nil {
				t.Fatalf("expected --%s 0 to be rejected", flag)
			}
		})
	}
}

func TestPersistentPreRunEMissingDefaultConfig(t *testing.T) {
	oldCwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })
	useConfig(t, appconfig.DefaultConfigPath)

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("expected defaults without a config file, got %v", err)
	}
	if loadedConfigFile != "" {
		t.Fatalf("expected no config file recorded, got %q", loadedConfigFile)
	}
}

func TestPersistentPreRunEMissingExplicitConfig(t *testing.T) {
	useConfig(t, filepath.Join(t.TempDir(), "missing.json"))

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestShowConfigCommandOutput(t *testing.T) {
	configPath := writeTempConfig(t, `{"batch_size": 50}`)
	useConfig(t, configPath)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--config", configPath, "--logFile", filepath.Join(t.TempDir(), "show.log"), "show", "config"})
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	if _, err := rootCmd.ExecuteC(); err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Config file: "+configPath) {
		t.Fatalf("expected config file path in output, got %s", out)
	}
	if !strings.Contains(out, "Batch Size:       50") {
		t.Fatalf("expected batch size in output, got %s", out)
	}
	if !strings.Contains(out, "Encoding:         "+appconfig.DefaultEncoding) {
		t.Fatalf("expected default encoding in output, got %s", out)
	}
}

func TestBenchmarkCommandsSelectModes(t *testing.T) {
	configPath := writeTempConfig(t, "{}")
	useConfig(t, configPath)

	var gotModes []string
	var gotCfg *appconfig.Config
	orig := runModes
	runModes = func(cfg *appconfig.Config, modes []string, out io.Writer) error {
		gotCfg = cfg
		gotModes = modes
		_, err := io.WriteString(out, "report\n")
		return err
	}
	t.Cleanup(func() { runModes = orig })

	tests := []struct {
		command string
		want    []string
	}{
		{command: "run", want: nil},
		{command: "single", want: []string{appconfig.ModeSingle}},
		{command: "batch", want: []string{appconfig.ModeBatch}},
	}
	for _, tt := range tests {
		gotModes, gotCfg = []string{"unset"}, nil

		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetErr(&buf)
		rootCmd.SetArgs([]string{"--config", configPath, "--logFile", filepath.Join(t.TempDir(), "run.log"), "benchmark", tt.command, "--sample-size", "3"})
		if _, err := rootCmd.ExecuteC(); err != nil {
			t.Fatalf("%s: ExecuteC error: %v", tt.command, err)
		}

		if !reflect.DeepEqual(gotModes, tt.want) {
			t.Fatalf("%s: expected modes %v, got %v", tt.command, tt.want, gotModes)
		}
		if gotCfg == nil || gotCfg.SampleSize != 3 {
			t.Fatalf("%s: expected config with sample size 3, got %+v", tt.command, gotCfg)
		}
		if !strings.Contains(buf.String(), "report") {
			t.Fatalf("%s: expected report on command output, got %s", tt.command, buf.String())
		}
	}
	rootCmd.SetArgs([]string{})
}

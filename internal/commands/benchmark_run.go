package tokbench

import (
	"github.com/mwiater/tokbench/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var benchmarkRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Benchmark every configured mode, single before batch",
	Annotations: map[string]string{
		modesAnnotation: "configured",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBenchmark(cmd.OutOrStdout(), nil)
	},
}

var benchmarkSingleCmd = &cobra.Command{
	Use:   "single",
	Short: "Benchmark one encode call per corpus line",
	Annotations: map[string]string{
		modesAnnotation: appconfig.ModeSingle,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBenchmark(cmd.OutOrStdout(), []string{appconfig.ModeSingle})
	},
}

var benchmarkBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Benchmark one batch encode call per corpus batch",
	Annotations: map[string]string{
		modesAnnotation: appconfig.ModeBatch,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBenchmark(cmd.OutOrStdout(), []string{appconfig.ModeBatch})
	},
}

func init() {
	benchmarkCmd.AddCommand(benchmarkRunCmd, benchmarkSingleCmd, benchmarkBatchCmd)

	benchmarkRunCmd.Flags().StringSlice("modes", nil, "modes to run (single, batch)")
	_ = viper.BindPFlag("modes", benchmarkRunCmd.Flags().Lookup("modes"))
}

// atomlens - integration-runtime disk footprint analyzer.
// Correlates process definitions with execution history to rank
// processes by the log volume they generate.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	aerrors "github.com/atomlens/atomlens/pkg/errors"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// CLI flags
var (
	processesDir string
	executionDir string
	logsDir      string
	topN         int
	csvPath      string
	xlsxPath     string
	workers      int
	verbose      bool
	keepTemp     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if aerrors.IsFatal(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "atomlens",
	Short: "atomlens - rank integration processes by disk footprint",
	Long: `atomlens analyzes an integration runtime's on-disk footprint.

It correlates process definitions with execution history logs and
ranks processes by the disk space their executions consume, so log
retention and logging levels can be tuned where it matters.`,
	Version: fmt.Sprintf("%s (%s)", version, commit),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Scan the runtime directories and print the footprint report",
	Long: `Scan the definitions and execution-history collections, correlate
executions to processes, and print top-N rankings by total and by
average footprint.

Examples:
  atomlens analyze --processes-dir /opt/atom/processes --execution-dir /opt/atom/execution
  atomlens analyze --top 20 --csv footprint_report.csv
  atomlens analyze --csv report.csv --xlsx report.xlsx --verbose`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	analyzeCmd.Flags().StringVar(&processesDir, "processes-dir", "", "Definitions collection root")
	analyzeCmd.Flags().StringVar(&executionDir, "execution-dir", "", "Execution-history collection root")
	analyzeCmd.Flags().StringVar(&logsDir, "logs-dir", "", "Shared container logs directory")
	analyzeCmd.Flags().IntVar(&topN, "top", 0, "Number of processes per ranking table (default 5)")
	analyzeCmd.Flags().StringVar(&csvPath, "csv", "", "CSV report output path (omit to disable)")
	analyzeCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "XLSX report output path (omit to disable)")
	analyzeCmd.Flags().IntVar(&workers, "workers", 0, "Parallel scan workers (default from config)")
	analyzeCmd.Flags().BoolVar(&keepTemp, "keep-temp", false, "Retain the raw event dump for debugging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(unitCmd)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/atomlens/atomlens/internal/model"
	"github.com/atomlens/atomlens/pkg/collect"
	"github.com/atomlens/atomlens/pkg/config"
	"github.com/atomlens/atomlens/pkg/correlate"
	aerrors "github.com/atomlens/atomlens/pkg/errors"
	"github.com/atomlens/atomlens/pkg/registry"
	"github.com/atomlens/atomlens/pkg/report"
	"github.com/atomlens/atomlens/pkg/stats"
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted, stopping scan...")
		cancel()
	}()

	logf := func(format string, a ...interface{}) {
		fmt.Printf(format+"\n", a...)
	}
	verbosef := func(format string, a ...interface{}) {
		if verbose {
			fmt.Printf(format+"\n", a...)
		}
	}

	// Pass 1: build the definition registry. It must be complete
	// before any correlation happens.
	builder := &registry.Builder{
		Dir:     cfg.Paths.Processes,
		Workers: cfg.Scan.Workers,
		Logf:    verbosef,
	}
	reg, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	logf("Definitions loaded:          %d", reg.Len())
	if reg.SkippedNoDoc > 0 {
		verbosef("Definitions skipped (no descriptor): %d", reg.SkippedNoDoc)
	}

	// Pass 2: collect execution events.
	var bar *progressbar.ProgressBar
	collector := &collect.Collector{
		Dir:     cfg.Paths.Execution,
		Workers: cfg.Scan.Workers,
		Logf:    verbosef,
	}
	if !verbose {
		collector.OnStart = func(total int) {
			bar = showProgress(int64(total), "scanning executions")
		}
		collector.Progress = func() {
			if bar != nil {
				bar.Add(1)
			}
		}
	}
	res, err := collector.Collect(ctx)
	if err != nil {
		return err
	}
	if bar != nil {
		bar.Finish()
	}
	logf("Execution artifacts scanned: %d", res.Scanned)
	if res.SkippedNoLog > 0 {
		verbosef("Executions skipped (no process log): %d", res.SkippedNoLog)
	}
	if res.Unattributed > 0 {
		verbosef("Executions dropped (no process name): %d", res.Unattributed)
	}

	if keepTemp || cfg.Scan.KeepTemp {
		if path, err := dumpEvents(res); err == nil {
			logf("Raw event dump retained at %s", path)
		}
	}

	// Join: correlate and aggregate.
	corr := correlate.New(reg)
	events := corr.Correlate(res.Events)
	logf("Events attributed:           %d", len(events))
	if corr.UnmatchedCount() > 0 {
		logf("Warning: %d process name(s) had no matching definition", corr.UnmatchedCount())
		if verbose {
			for id, name := range corr.UnmatchedNames() {
				fmt.Printf("  %s -> %s\n", name, id)
			}
		}
	}

	list := stats.Aggregate(events, reg)
	if len(list) == 0 {
		fmt.Println(aerrors.NoData().Message)
		return nil
	}

	byTotal := stats.ByTotal(list)
	byAverage := stats.ByAverage(list)

	report.PrintTable(os.Stdout, "TOP PROCESSES BY TOTAL FOOTPRINT", byTotal, cfg.Report.TopN)
	report.PrintTable(os.Stdout, "TOP PROCESSES BY AVERAGE FOOTPRINT", byAverage, cfg.Report.TopN)

	if cfg.Report.CSV != "" {
		if err := report.WriteCSV(cfg.Report.CSV, byTotal); err != nil {
			return err
		}
		abs, _ := filepath.Abs(cfg.Report.CSV)
		logf("CSV report written to %s", abs)
	}
	if cfg.Report.XLSX != "" {
		if err := report.WriteXLSX(cfg.Report.XLSX, byTotal); err != nil {
			return err
		}
		abs, _ := filepath.Abs(cfg.Report.XLSX)
		logf("XLSX report written to %s", abs)
	}

	printSummary(cfg, list, res)
	return nil
}

// loadConfig merges config files, environment, and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	mgr := config.NewManager()
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	// Flags win over every other source.
	if cmd.Flags().Changed("processes-dir") {
		cfg.Paths.Processes = processesDir
	}
	if cmd.Flags().Changed("execution-dir") {
		cfg.Paths.Execution = executionDir
	}
	if cmd.Flags().Changed("logs-dir") {
		cfg.Paths.Logs = logsDir
	}
	if cmd.Flags().Changed("top") {
		cfg.Report.TopN = topN
	}
	if cmd.Flags().Changed("csv") {
		cfg.Report.CSV = csvPath
	}
	if cmd.Flags().Changed("xlsx") {
		cfg.Report.XLSX = xlsxPath
	}
	if cmd.Flags().Changed("workers") {
		cfg.Scan.Workers = workers
	}

	if cfg.Report.TopN < 1 {
		cfg.Report.TopN = 5
	}
	return cfg, nil
}

// printSummary renders the run-level figures after the tables.
func printSummary(cfg *config.Config, list []*model.ProcessStats, res *collect.Result) {
	var combined, executions int64
	for _, s := range list {
		combined += s.TotalSizeKiB
		executions += s.ExecutionCount
	}
	var execHistory int64
	for _, ev := range res.Events {
		execHistory += ev.SizeKiB
	}

	report.PrintSummary(os.Stdout, report.Summary{
		Processes:       len(list),
		Executions:      executions,
		CombinedKiB:     combined,
		ExecutionKiB:    execHistory,
		ContainerLogKiB: collect.ContainerLogBytes(cfg.Paths.Logs) / 1024,
	})
}

// showProgress creates the scan progress bar.
func showProgress(total int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// dumpEvents writes the raw collected events to a temp file for
// debugging and returns its path.
func dumpEvents(res *collect.Result) (string, error) {
	f, err := os.CreateTemp("", "atomlens-events-*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Events); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

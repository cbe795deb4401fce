package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomlens/atomlens/pkg/config"
)

var (
	unitOutputDir string
	unitSchedule  string
)

var unitCmd = &cobra.Command{
	Use:   "unit",
	Short: "Generate systemd service and timer units for scheduled runs",
	Long: `Write a systemd service/timer pair that runs the analyzer on a
schedule. The units embed the currently configured collection paths.

Examples:
  atomlens unit -o /etc/systemd/system
  atomlens unit -o ./units --schedule weekly`,
	RunE: runUnit,
}

func init() {
	unitCmd.Flags().StringVarP(&unitOutputDir, "output", "o", ".", "Directory to write the unit files into")
	unitCmd.Flags().StringVar(&unitSchedule, "schedule", "daily", "systemd OnCalendar expression")
}

const serviceTemplate = `[Unit]
Description=Integration runtime disk footprint report
After=local-fs.target

[Service]
Type=oneshot
ExecStart=%s analyze --processes-dir %s --execution-dir %s --logs-dir %s --csv %s
Nice=10
IOSchedulingClass=idle
`

const timerTemplate = `[Unit]
Description=Scheduled integration runtime footprint report

[Timer]
OnCalendar=%s
Persistent=true

[Install]
WantedBy=timers.target
`

func runUnit(cmd *cobra.Command, args []string) error {
	mgr := config.NewManager()
	if err := mgr.Load(); err != nil {
		return err
	}
	cfg := mgr.Get()

	exe, err := os.Executable()
	if err != nil {
		exe = "atomlens"
	}

	csvOut := cfg.Report.CSV
	if csvOut == "" {
		csvOut = "/var/log/atomlens/footprint_report.csv"
	}

	if err := os.MkdirAll(unitOutputDir, 0755); err != nil {
		return err
	}

	service := fmt.Sprintf(serviceTemplate,
		exe, cfg.Paths.Processes, cfg.Paths.Execution, cfg.Paths.Logs, csvOut)
	servicePath := filepath.Join(unitOutputDir, "atomlens.service")
	if err := os.WriteFile(servicePath, []byte(service), 0644); err != nil {
		return err
	}

	timer := fmt.Sprintf(timerTemplate, strings.TrimSpace(unitSchedule))
	timerPath := filepath.Join(unitOutputDir, "atomlens.timer")
	if err := os.WriteFile(timerPath, []byte(timer), 0644); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", servicePath)
	fmt.Printf("Wrote %s\n", timerPath)
	fmt.Println("Enable with: systemctl enable --now atomlens.timer")
	return nil
}

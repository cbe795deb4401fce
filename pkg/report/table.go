// Package report renders the footprint rankings: console tables, a
// CSV export, and a spreadsheet export.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atomlens/atomlens/internal/model"
)

// Display truncation widths for the console tables. The CSV and XLSX
// exports are never truncated.
const (
	nameWidth = 40
	idWidth   = 38
	lineWidth = 120
)

// Colors (Swiss minimal)
var (
	accent = lipgloss.Color("#FF0000")
	muted  = lipgloss.Color("#666666")
	white  = lipgloss.Color("#FFFFFF")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(white)
	accentStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted)
)

// PrintTable renders a top-N ranking to w. The list must already be
// sorted; PrintTable only truncates and formats.
func PrintTable(w io.Writer, title string, list []*model.ProcessStats, topN int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, accentStyle.Render("▸ "+title))
	fmt.Fprintln(w, mutedStyle.Render(strings.Repeat("─", lineWidth)))

	header := fmt.Sprintf("%-*s %-*s %-6s %-10s %-8s %-8s",
		nameWidth, "Process Name", idWidth, "Process ID",
		"Count", "Total MB", "Avg MB", "Max MB")
	fmt.Fprintln(w, titleStyle.Render(header))
	fmt.Fprintln(w, mutedStyle.Render(strings.Repeat("─", lineWidth)))

	n := topN
	if n > len(list) {
		n = len(list)
	}
	for _, s := range list[:n] {
		fmt.Fprintf(w, "%-*s %-*s %-6d %-10.2f %-8.2f %-8.2f\n",
			nameWidth, truncate(s.Name, nameWidth-1),
			idWidth, truncate(s.ID, idWidth-1),
			s.ExecutionCount, s.TotalSizeMB(), s.AverageSizeMB(), s.MaxSizeMB())
	}

	fmt.Fprintln(w, mutedStyle.Render(strings.Repeat("─", lineWidth)))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Showing top %d of %d processes", n, len(list))))
}

// truncate clips s to at most max characters.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// Summary holds the run-level figures printed after the tables.
type Summary struct {
	Processes       int
	Executions      int64
	CombinedKiB     int64
	ExecutionKiB    int64
	ContainerLogKiB int64
}

// PrintSummary renders the run summary.
func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, accentStyle.Render("▸ SUMMARY"))
	fmt.Fprintf(w, "  %s %d\n", mutedStyle.Render("Processes analyzed:"), s.Processes)
	fmt.Fprintf(w, "  %s %d\n", mutedStyle.Render("Executions found:  "), s.Executions)
	fmt.Fprintf(w, "  %s %.2f MB\n", mutedStyle.Render("Combined size:     "), float64(s.CombinedKiB)/1024)
	fmt.Fprintf(w, "  %s %.2f MB\n", mutedStyle.Render("Execution history: "), float64(s.ExecutionKiB)/1024)
	if s.ContainerLogKiB > 0 {
		// Shared across all processes, never attributed to one id.
		fmt.Fprintf(w, "  %s %.2f MB\n", mutedStyle.Render("Container logs:    "), float64(s.ContainerLogKiB)/1024)
	}
	fmt.Fprintln(w)
}

package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/atomlens/atomlens/internal/model"
	aerrors "github.com/atomlens/atomlens/pkg/errors"
)

// csvHeader is the exact export header. Tooling downstream keys on
// these column names; do not reorder.
var csvHeader = []string{
	"Process Name",
	"Process ID",
	"Process Type",
	"Folder Path",
	"Execution Count",
	"Total Size (Bytes)",
	"Total Size (MB)",
	"Average Size (MB)",
	"Max Size (MB)",
	"Process Definition Size (MB)",
	"Execution Logs Size (MB)",
}

// WriteCSV writes the full, untruncated report. The list should be
// sorted descending by total footprint before the call.
func WriteCSV(path string, list []*model.ProcessStats) error {
	f, err := os.Create(path)
	if err != nil {
		return aerrors.Wrap(err, aerrors.CodeWriteFailed, "cannot create CSV report")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return aerrors.Wrap(err, aerrors.CodeWriteFailed, "cannot write CSV header")
	}

	for _, s := range list {
		row := []string{
			s.Name,
			s.ID,
			s.Type,
			s.Folder,
			fmt.Sprintf("%d", s.ExecutionCount),
			fmt.Sprintf("%d", s.TotalSizeBytes()),
			fmt.Sprintf("%.2f", s.TotalSizeMB()),
			fmt.Sprintf("%.2f", s.AverageSizeMB()),
			fmt.Sprintf("%.2f", s.MaxSizeMB()),
			fmt.Sprintf("%.2f", s.DefinitionSizeMB()),
			fmt.Sprintf("%.2f", s.ExecutionSizeMB()),
		}
		if err := w.Write(row); err != nil {
			return aerrors.Wrap(err, aerrors.CodeWriteFailed, "cannot write CSV row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return aerrors.Wrap(err, aerrors.CodeWriteFailed, "cannot flush CSV report")
	}
	return nil
}

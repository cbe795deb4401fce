package report

import (
	"github.com/xuri/excelize/v2"

	"github.com/atomlens/atomlens/internal/model"
	aerrors "github.com/atomlens/atomlens/pkg/errors"
)

const sheetName = "Footprint"

// WriteXLSX writes the full report as a workbook with the same
// columns as the CSV export, for operators who consume reports in
// spreadsheets.
func WriteXLSX(path string, list []*model.ProcessStats) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return aerrors.Wrap(err, aerrors.CodeWriteFailed, "cannot create worksheet")
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return aerrors.Wrap(err, aerrors.CodeWriteFailed, "cannot create stream writer")
	}

	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return aerrors.Wrap(err, aerrors.CodeWriteFailed, "cannot write header row")
	}

	for i, s := range list {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			s.Name,
			s.ID,
			s.Type,
			s.Folder,
			s.ExecutionCount,
			s.TotalSizeBytes(),
			s.TotalSizeMB(),
			s.AverageSizeMB(),
			s.MaxSizeMB(),
			s.DefinitionSizeMB(),
			s.ExecutionSizeMB(),
		}
		if err := sw.SetRow(cell, row); err != nil {
			return aerrors.Wrap(err, aerrors.CodeWriteFailed, "cannot write report row")
		}
	}

	if err := sw.Flush(); err != nil {
		return aerrors.Wrap(err, aerrors.CodeWriteFailed, "cannot flush worksheet")
	}
	if err := f.SaveAs(path); err != nil {
		return aerrors.Wrap(err, aerrors.CodeWriteFailed, "cannot save XLSX report")
	}
	return nil
}

// Package export writes report listings as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"gitlab.com/ranfdev/dailyreport/internal/domain"
	"gitlab.com/ranfdev/dailyreport/internal/utils"
)

const (
	SheetName   = "Reports"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var header = []interface{}{"ID", "Employee code", "Employee", "Date", "Title", "Content", "Created at", "Updated at"}

// WriteReports writes one row per report, after a header row.
func WriteReports(w io.Writer, reports []domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	for i, r := range reports {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.ID,
			r.EmployeeCode,
			r.EmployeeName,
			utils.FormatDate(r.ReportDate),
			r.Title,
			r.Content,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetName, "E", "F", 40); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing spreadsheet: %w", err)
	}
	return nil
}

package reports

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	pkgerrors "github.com/dattendance/attendance-backend/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type served with workbook downloads.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export is a rendered workbook ready to stream to the client.
type Export struct {
	FileName string
	Content  *bytes.Buffer
}

// Exporter renders the four admin reports as xlsx workbooks.
type Exporter interface {
	MonthlyWorkbook(ctx context.Context, month, year int) (*Export, error)
	EmployeeWorkbook(ctx context.Context) (*Export, error)
	WorkingHoursWorkbook(ctx context.Context, month, year int) (*Export, error)
	AbsenceWorkbook(ctx context.Context, month, year int) (*Export, error)
}

type exporter struct {
	reports Service
}

// NewExporter builds an xlsx exporter on top of the reports service.
func NewExporter(reports Service) (Exporter, error) {
	if reports == nil {
		return nil, fmt.Errorf("reports service is required")
	}
	return &exporter{reports: reports}, nil
}

// workbook wraps an excelize file with the header styles shared by every
// exported report.
type workbook struct {
	file        *excelize.File
	sheet       string
	titleStyle  int
	headerStyle int
	boldStyle   int
}

func newWorkbook(sheet string) (*workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return nil, err
	}

	return &workbook{
		file:        f,
		sheet:       sheet,
		titleStyle:  title,
		headerStyle: header,
		boldStyle:   bold,
	}, nil
}

func (w *workbook) title(cell, endCell, text string) error {
	if err := w.file.SetCellValue(w.sheet, cell, text); err != nil {
		return err
	}
	if err := w.file.SetCellStyle(w.sheet, cell, cell, w.titleStyle); err != nil {
		return err
	}
	return w.file.MergeCell(w.sheet, cell, endCell)
}

func (w *workbook) sectionLabel(cell, text string) error {
	if err := w.file.SetCellValue(w.sheet, cell, text); err != nil {
		return err
	}
	return w.file.SetCellStyle(w.sheet, cell, cell, w.boldStyle)
}

func (w *workbook) headerRow(row int, headers []string) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.sheet, cell, header); err != nil {
			return err
		}
		if err := w.file.SetCellStyle(w.sheet, cell, cell, w.headerStyle); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) dataRow(row int, values []any) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) colWidths(width float64, cols ...string) error {
	for _, col := range cols {
		if err := w.file.SetColWidth(w.sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) render(fileName string) (*Export, error) {
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return &Export{FileName: fileName, Content: buf}, nil
}

func (e *exporter) MonthlyWorkbook(ctx context.Context, month, year int) (*Export, error) {
	report, err := e.reports.Monthly(ctx, month, year)
	if err != nil {
		return nil, err
	}

	w, err := newWorkbook("Monthly Report")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}

	monthName := time.Month(month).String()
	if err := w.title("A1", "E1", fmt.Sprintf("Monthly Attendance Report - %s %d", monthName, year)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	if err := w.sectionLabel("A3", "Summary"); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	if err := w.headerRow(4, []string{"Metric", "Count"}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	summaryRows := [][]any{
		{"Total Present", report.Summary.TotalPresent},
		{"Total Absent", report.Summary.TotalAbsent},
		{"Total Leave", report.Summary.TotalLeave},
		{"Total Records", report.Summary.TotalRecords},
	}
	for i, row := range summaryRows {
		if err := w.dataRow(5+i, row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
		}
	}

	if err := w.sectionLabel("A10", "Daily Breakdown"); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	if err := w.headerRow(11, []string{"Date", "Day", "Present", "Absent", "Leave"}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}

	dates := make([]string, 0, len(report.DailyStats))
	for date := range report.DailyStats {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for i, date := range dates {
		stat := report.DailyStats[date]
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
		}
		row := []any{date, parsed.Weekday().String(), stat.Present, stat.Absent, stat.Leave}
		if err := w.dataRow(12+i, row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
		}
	}

	if err := w.colWidths(15, "A", "B"); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	if err := w.colWidths(12, "C", "D", "E"); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}

	return w.render(fmt.Sprintf("Monthly_Report_%d_%d.xlsx", month, year))
}

func (e *exporter) EmployeeWorkbook(ctx context.Context) (*Export, error) {
	report, err := e.reports.EmployeeSummaries(ctx)
	if err != nil {
		return nil, err
	}

	w, err := newWorkbook("Employee Summary")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}

	if err := w.title("A1", "H1", "Employee Attendance Summary Report (All Time)"); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	headers := []string{"Employee Name", "Username", "Department", "Present", "Absent", "Leave", "Total Records", "Total Hours"}
	if err := w.headerRow(3, headers); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	for i, emp := range report.Employees {
		row := []any{
			emp.Name, emp.Username, emp.Department,
			emp.TotalPresent, emp.TotalAbsent, emp.TotalLeave,
			emp.TotalRecords, emp.TotalHours,
		}
		if err := w.dataRow(4+i, row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
		}
	}
	if err := w.colWidths(15, "A", "B", "C", "D", "E", "F", "G", "H"); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}

	return w.render("Employee_Summary_Report.xlsx")
}

func (e *exporter) WorkingHoursWorkbook(ctx context.Context, month, year int) (*Export, error) {
	report, err := e.reports.WorkingHours(ctx, month, year)
	if err != nil {
		return nil, err
	}

	w, err := newWorkbook("Working Hours")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}

	monthName := time.Month(month).String()
	if err := w.title("A1", "F1", fmt.Sprintf("Working Hours Report - %s %d", monthName, year)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	if err := w.sectionLabel("A3", "Summary"); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	if err := w.dataRow(4, []any{"Total Hours:", report.TotalHours}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	if err := w.dataRow(5, []any{"Average Hours:", report.AverageHours}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	if err := w.sectionLabel("A7", "Employee Working Hours"); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	headers := []string{"Employee Name", "Username", "Department", "Working Days", "Total Hours", "Average Hours/Day"}
	if err := w.headerRow(8, headers); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	for i, emp := range report.Employees {
		row := []any{
			emp.Name, emp.Username, emp.Department,
			emp.WorkingDays, emp.TotalHours, emp.AverageHours,
		}
		if err := w.dataRow(9+i, row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
		}
	}
	if err := w.colWidths(16, "A", "B", "C", "D", "E", "F"); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}

	return w.render(fmt.Sprintf("Working_Hours_Report_%d_%d.xlsx", month, year))
}

func (e *exporter) AbsenceWorkbook(ctx context.Context, month, year int) (*Export, error) {
	report, err := e.reports.Absences(ctx, month, year)
	if err != nil {
		return nil, err
	}

	w, err := newWorkbook("Absence Report")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}

	monthName := time.Month(month).String()
	if err := w.title("A1", "F1", fmt.Sprintf("Absence Report - %s %d", monthName, year)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	if err := w.sectionLabel("A3", fmt.Sprintf("Total Absences: %d", report.TotalAbsences)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	headers := []string{"Employee Name", "Username", "Department", "Date", "Day", "Notes"}
	if err := w.headerRow(5, headers); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}
	for i, absence := range report.Absences {
		row := []any{
			absence.EmployeeName, absence.Username, absence.Department,
			absence.Date, absence.Day, absence.Notes,
		}
		if err := w.dataRow(6+i, row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
		}
	}
	if err := w.colWidths(16, "A", "B", "C", "D", "E", "F"); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build workbook")
	}

	return w.render(fmt.Sprintf("Absence_Report_%d_%d.xlsx", month, year))
}

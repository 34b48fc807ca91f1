package reports

import (
	"context"
	"testing"

	"github.com/dattendance/attendance-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func openExport(t *testing.T, export *Export) *excelize.File {
	t.Helper()
	file, err := excelize.OpenReader(export.Content)
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })
	return file
}

func cell(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	value, err := f.GetCellValue(sheet, ref)
	require.NoError(t, err)
	return value
}

func TestMonthlyWorkbook(t *testing.T) {
	alice := models.User{ID: uuid.New(), Username: "alice", FullName: "Alice A", Role: models.RoleEmployee, IsActive: true}
	rows := []models.Attendance{
		ledgerRow(alice.ID, jan(5, 9), models.StatusPresent, 8),
		ledgerRow(alice.ID, jan(6, 9), models.StatusAbsent, 0),
	}
	svc := newReportsFixture(t, []models.User{alice}, rows, jan(10, 12))
	exporter, err := NewExporter(svc)
	require.NoError(t, err)

	export, err := exporter.MonthlyWorkbook(context.Background(), 1, 2026)
	require.NoError(t, err)
	require.Equal(t, "Monthly_Report_1_2026.xlsx", export.FileName)

	f := openExport(t, export)
	require.Equal(t, "Monthly Attendance Report - January 2026", cell(t, f, "Monthly Report", "A1"))
	require.Equal(t, "Metric", cell(t, f, "Monthly Report", "A4"))
	require.Equal(t, "Total Present", cell(t, f, "Monthly Report", "A5"))
	require.Equal(t, "1", cell(t, f, "Monthly Report", "B5"))
	require.Equal(t, "Daily Breakdown", cell(t, f, "Monthly Report", "A10"))
	// First day of the month leads the breakdown.
	require.Equal(t, "2026-01-01", cell(t, f, "Monthly Report", "A12"))
}

func TestEmployeeWorkbook(t *testing.T) {
	alice := models.User{ID: uuid.New(), Username: "alice", FullName: "Alice A", Role: models.RoleEmployee, IsActive: true, Department: dept("Ops")}
	rows := []models.Attendance{
		ledgerRow(alice.ID, jan(5, 9), models.StatusPresent, 8),
	}
	svc := newReportsFixture(t, []models.User{alice}, rows, jan(10, 12))
	exporter, err := NewExporter(svc)
	require.NoError(t, err)

	export, err := exporter.EmployeeWorkbook(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Employee_Summary_Report.xlsx", export.FileName)

	f := openExport(t, export)
	require.Equal(t, "Employee Attendance Summary Report (All Time)", cell(t, f, "Employee Summary", "A1"))
	require.Equal(t, "Employee Name", cell(t, f, "Employee Summary", "A3"))
	require.Equal(t, "Alice A", cell(t, f, "Employee Summary", "A4"))
	require.Equal(t, "Ops", cell(t, f, "Employee Summary", "C4"))
	require.Equal(t, "8", cell(t, f, "Employee Summary", "H4"))
}

func TestWorkingHoursWorkbook(t *testing.T) {
	alice := models.User{ID: uuid.New(), Username: "alice", FullName: "Alice A", Role: models.RoleEmployee, IsActive: true}
	rows := []models.Attendance{
		ledgerRow(alice.ID, jan(5, 9), models.StatusPresent, 8),
	}
	svc := newReportsFixture(t, []models.User{alice}, rows, jan(10, 12))
	exporter, err := NewExporter(svc)
	require.NoError(t, err)

	export, err := exporter.WorkingHoursWorkbook(context.Background(), 1, 2026)
	require.NoError(t, err)
	require.Equal(t, "Working_Hours_Report_1_2026.xlsx", export.FileName)

	f := openExport(t, export)
	require.Equal(t, "Working Hours Report - January 2026", cell(t, f, "Working Hours", "A1"))
	require.Equal(t, "Total Hours:", cell(t, f, "Working Hours", "A4"))
	require.Equal(t, "8", cell(t, f, "Working Hours", "B4"))
	require.Equal(t, "Alice A", cell(t, f, "Working Hours", "A9"))
}

func TestAbsenceWorkbook(t *testing.T) {
	alice := models.User{ID: uuid.New(), Username: "alice", FullName: "Alice A", Role: models.RoleEmployee, IsActive: true}
	rows := []models.Attendance{
		ledgerRow(alice.ID, jan(5, 0), models.StatusAbsent, 0),
	}
	svc := newReportsFixture(t, []models.User{alice}, rows, jan(10, 12))
	exporter, err := NewExporter(svc)
	require.NoError(t, err)

	export, err := exporter.AbsenceWorkbook(context.Background(), 1, 2026)
	require.NoError(t, err)
	require.Equal(t, "Absence_Report_1_2026.xlsx", export.FileName)

	f := openExport(t, export)
	require.Equal(t, "Absence Report - January 2026", cell(t, f, "Absence Report", "A1"))
	require.Equal(t, "Total Absences: 1", cell(t, f, "Absence Report", "A3"))
	require.Equal(t, "Alice A", cell(t, f, "Absence Report", "A6"))
	require.Equal(t, "Monday", cell(t, f, "Absence Report", "E6"))
}

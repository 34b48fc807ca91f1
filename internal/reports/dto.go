package reports

// DailyStat is one calendar day's status tally in the monthly report.
type DailyStat struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Leave   int `json:"leave"`
}

// MonthlySummary aggregates the month's ledger rows by status.
type MonthlySummary struct {
	TotalRecords int `json:"total_records"`
	TotalPresent int `json:"total_present"`
	TotalAbsent  int `json:"total_absent"`
	TotalLeave   int `json:"total_leave"`
}

// MonthlyReport covers one calendar month. DailyStats carries an entry for
// every day of the month, including days without records.
type MonthlyReport struct {
	Summary    MonthlySummary       `json:"summary"`
	DailyStats map[string]DailyStat `json:"daily_stats"`
	Month      int                  `json:"month"`
	Year       int                  `json:"year"`
}

// EmployeeSummary is one employee's all-time attendance aggregate.
type EmployeeSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Username     string  `json:"username"`
	Department   string  `json:"department"`
	TotalPresent int     `json:"total_present"`
	TotalAbsent  int     `json:"total_absent"`
	TotalLeave   int     `json:"total_leave"`
	TotalRecords int     `json:"total_records"`
	TotalHours   float64 `json:"total_hours"`
}

// EmployeeSummaryReport is the all-time per-employee roll-up.
type EmployeeSummaryReport struct {
	Employees []EmployeeSummary `json:"employees"`
}

// WorkingHoursRow is one employee's hours within the reported month.
type WorkingHoursRow struct {
	Name         string  `json:"name"`
	Username     string  `json:"username"`
	Department   string  `json:"department"`
	WorkingDays  int     `json:"working_days"`
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
}

// WorkingHoursReport sums completed shifts for the month. AverageHours is
// the mean of the per-employee averages, not a weighted mean.
type WorkingHoursReport struct {
	Employees    []WorkingHoursRow `json:"employees"`
	TotalHours   float64           `json:"total_hours"`
	AverageHours float64           `json:"average_hours"`
	Month        int               `json:"month"`
	Year         int               `json:"year"`
}

// AbsenceRow is one absent day for one employee.
type AbsenceRow struct {
	EmployeeName string `json:"employee_name"`
	Username     string `json:"username"`
	Department   string `json:"department"`
	Date         string `json:"date"`
	Day          string `json:"day"`
	Notes        string `json:"notes"`
}

// AbsenceReport lists the month's absences.
type AbsenceReport struct {
	Absences      []AbsenceRow `json:"absences"`
	TotalAbsences int          `json:"total_absences"`
	Month         int          `json:"month"`
	Year          int          `json:"year"`
}

// DashboardStats backs the admin dashboard header cards.
type DashboardStats struct {
	TotalEmployees int64 `json:"total_employees"`
	PresentToday   int64 `json:"present_today"`
	AbsentToday    int64 `json:"absent_today"`
}

// EmployeeHoursRow is one employee's live status for today.
type EmployeeHoursRow struct {
	Name   string `json:"name"`
	Hours  string `json:"hours"`
	Status string `json:"status"`
}

// EmployeeHoursToday lists each active employee's worked time so far today.
type EmployeeHoursToday struct {
	Employees []EmployeeHoursRow `json:"employees"`
}

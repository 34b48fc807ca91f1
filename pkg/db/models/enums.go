package models

// Role is the flat two-value access gate.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// AttendanceStatus classifies a ledger row.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLeave   AttendanceStatus = "leave"
)

func (s AttendanceStatus) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave:
		return true
	}
	return false
}

// DaysOfWeek lists the rota day labels in display order, Monday first.
var DaysOfWeek = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayRank returns the Monday-first ordering position of a day label,
// or 8 for anything unrecognized so bad labels sort last.
func WeekdayRank(day string) int {
	for i, d := range DaysOfWeek {
		if d == day {
			return i + 1
		}
	}
	return 8
}

// IsValidDayOfWeek reports whether day is one of the seven rota labels.
func IsValidDayOfWeek(day string) bool {
	return WeekdayRank(day) <= 7
}

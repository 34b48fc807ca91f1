package rotas

import (
	"fmt"
	"time"

	"github.com/dattendance/attendance-backend/pkg/db/models"
	dbtypes "github.com/dattendance/attendance-backend/pkg/db/types"
)

// CheckInWindow decides whether a check-in attempt at the given moment is
// allowed against the employee's shift for that weekday.
type CheckInWindow struct {
	// EarlyMinutes is how far before shift start a check-in is accepted.
	EarlyMinutes int
}

// Verdict is the outcome of a window check. When Allowed is false, Message
// carries the employee-facing rejection reason.
type Verdict struct {
	Allowed bool
	Message string
	Rota    *models.Rota
}

// Evaluate checks the current clock time against the shift assigned for the
// weekday of now. A nil rota means no schedule exists for that day.
func (w CheckInWindow) Evaluate(now time.Time, rota *models.Rota) Verdict {
	day := now.Weekday().String()
	if rota == nil {
		return Verdict{
			Message: fmt.Sprintf("No schedule assigned for %s. Please contact admin.", day),
		}
	}

	current := dbtypes.TimeOfDayOf(now)
	earliest := rota.ShiftStart.AddMinutes(-w.EarlyMinutes)

	if current < earliest {
		return Verdict{
			Message: fmt.Sprintf(
				"Too early to check in. Your shift starts at %s. You can check in 30 minutes before.",
				rota.ShiftStart.HHMM(),
			),
			Rota: rota,
		}
	}
	if current > rota.ShiftEnd {
		return Verdict{
			Message: fmt.Sprintf(
				"Your shift ended at %s. Cannot check in after shift end.",
				rota.ShiftEnd.HHMM(),
			),
			Rota: rota,
		}
	}
	return Verdict{Allowed: true, Rota: rota}
}

package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeOfDay is a clock time stored as seconds since midnight. It persists as
// an HH:MM:SS string so the column reads naturally in both Postgres and
// SQLite.
type TimeOfDay int

const secondsPerDay = 24 * 60 * 60

// NewTimeOfDay builds a TimeOfDay from clock components.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// ParseTimeOfDay accepts "15:04" or "15:04:05" formatted input.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", value)
}

// TimeOfDayOf extracts the clock time from a timestamp.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
}

// AddMinutes shifts the clock time, wrapping across midnight in either
// direction.
func (t TimeOfDay) AddMinutes(minutes int) TimeOfDay {
	shifted := (int(t) + minutes*60) % secondsPerDay
	if shifted < 0 {
		shifted += secondsPerDay
	}
	return TimeOfDay(shifted)
}

func (t TimeOfDay) clock() (hour, minute, second int) {
	v := int(t)
	return v / 3600, (v % 3600) / 60, v % 60
}

// String renders HH:MM:SS.
func (t TimeOfDay) String() string {
	h, m, s := t.clock()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// HHMM renders the short HH:MM form used in user-facing messages.
func (t TimeOfDay) HHMM() string {
	h, m, _ := t.clock()
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Value implements driver.Valuer.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner.
func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = 0
		return nil
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = TimeOfDayOf(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

// GormDataType tells GORM which column type to emit.
func (TimeOfDay) GormDataType() string {
	return "time"
}

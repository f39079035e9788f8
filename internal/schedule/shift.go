// Package schedule maps timestamps to the workshop's three fixed 8-hour
// operating shifts.
package schedule

import (
	"time"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal"
)

type Shift string

const (
	ShiftT1 Shift = "T1" // 08:00-16:00
	ShiftT2 Shift = "T2" // 16:00-00:00
	ShiftT3 Shift = "T3" // 00:00-08:00
)

func (s Shift) Valid() bool {
	switch s {
	case ShiftT1, ShiftT2, ShiftT3:
		return true
	}
	return false
}

func ParseShift(raw string) (Shift, error) {
	s := Shift(raw)
	if !s.Valid() {
		return "", internal.NewValidationError("shift must be one of T1, T2, T3", internal.ErrCodeInvalidShift)
	}
	return s, nil
}

// ShiftFor resolves the shift window a timestamp falls in.
func ShiftFor(t time.Time) Shift {
	switch hour := t.Hour(); {
	case hour >= 8 && hour < 16:
		return ShiftT1
	case hour >= 16:
		return ShiftT2
	default:
		return ShiftT3
	}
}

// Window returns the [start, end) interval of a shift on the given day.
// The day's date component is taken in the timestamp's location.
func Window(day time.Time, s Shift) (time.Time, time.Time) {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	switch s {
	case ShiftT1:
		return midnight.Add(8 * time.Hour), midnight.Add(16 * time.Hour)
	case ShiftT2:
		return midnight.Add(16 * time.Hour), midnight.Add(24 * time.Hour)
	default:
		return midnight, midnight.Add(8 * time.Hour)
	}
}

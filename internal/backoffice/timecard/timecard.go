package timecard

import (
	"errors"
	"time"

	"github.com/medikart/backoffice/internal/backoffice/models"
)

var (
	// ErrNotClockedIn is returned when clocking out a timecard with no clock-in
	ErrNotClockedIn = errors.New("timecard has no clock-in")

	// ErrAlreadyClockedOut is returned when a timecard already has a clock-out
	ErrAlreadyClockedOut = errors.New("timecard already clocked out")
)

// ClockOut closes a timecard: records the clock-out time, merges the supplied
// breaks with any already on the card, and computes hours worked as the shift
// span minus total break time. A clock-out earlier than the clock-in yields a
// negative result, passed through uncorrected.
func ClockOut(tc *models.Timecard, at time.Time, breaks []models.Break) error {
	if tc.ClockIn == nil {
		return ErrNotClockedIn
	}
	if tc.ClockOut != nil {
		return ErrAlreadyClockedOut
	}

	tc.ClockOut = &at
	tc.Breaks = append(tc.Breaks, breaks...)

	worked := at.Sub(*tc.ClockIn)
	for _, b := range tc.Breaks {
		worked -= b.End.Sub(b.Start)
	}
	tc.HoursWorked = worked.Hours()

	return nil
}

// BreakTotal returns the combined duration of a timecard's breaks
func BreakTotal(breaks []models.Break) time.Duration {
	var total time.Duration
	for _, b := range breaks {
		total += b.End.Sub(b.Start)
	}
	return total
}

package timecard

import (
	"testing"
	"time"

	"github.com/medikart/backoffice/internal/backoffice/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockOut(t *testing.T) {
	clockIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tc := &models.Timecard{ID: 1, StaffID: 7, Date: "2026-03-02", ClockIn: &clockIn}

	clockOut := clockIn.Add(8 * time.Hour)
	breaks := []models.Break{
		{Start: clockIn.Add(4 * time.Hour), End: clockIn.Add(4*time.Hour + 30*time.Minute)},
	}

	require.NoError(t, ClockOut(tc, clockOut, breaks))

	assert.Equal(t, 7.5, tc.HoursWorked)
	assert.Equal(t, &clockOut, tc.ClockOut)
	assert.Len(t, tc.Breaks, 1)
}

func TestClockOutMergesBreaks(t *testing.T) {
	clockIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tc := &models.Timecard{
		ClockIn: &clockIn,
		Breaks: []models.Break{
			{Start: clockIn.Add(2 * time.Hour), End: clockIn.Add(2*time.Hour + 15*time.Minute), Paid: true},
		},
	}

	extra := []models.Break{
		{Start: clockIn.Add(5 * time.Hour), End: clockIn.Add(5*time.Hour + 45*time.Minute)},
	}

	require.NoError(t, ClockOut(tc, clockIn.Add(9*time.Hour), extra))

	assert.Len(t, tc.Breaks, 2)
	assert.Equal(t, 8.0, tc.HoursWorked)
}

func TestClockOutWithoutClockIn(t *testing.T) {
	tc := &models.Timecard{ID: 2, StaffID: 7, Date: "2026-03-02"}

	err := ClockOut(tc, time.Now(), nil)

	assert.ErrorIs(t, err, ErrNotClockedIn)
	// Record unmodified on failure
	assert.Nil(t, tc.ClockOut)
	assert.Empty(t, tc.Breaks)
	assert.Equal(t, 0.0, tc.HoursWorked)
}

func TestClockOutTwice(t *testing.T) {
	clockIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tc := &models.Timecard{ClockIn: &clockIn}

	require.NoError(t, ClockOut(tc, clockIn.Add(4*time.Hour), nil))
	first := tc.HoursWorked

	err := ClockOut(tc, clockIn.Add(8*time.Hour), nil)

	assert.ErrorIs(t, err, ErrAlreadyClockedOut)
	assert.Equal(t, first, tc.HoursWorked)
}

func TestClockOutBeforeClockIn(t *testing.T) {
	clockIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tc := &models.Timecard{ClockIn: &clockIn}

	// A clock-out earlier than the clock-in yields a negative result,
	// passed through uncorrected
	require.NoError(t, ClockOut(tc, clockIn.Add(-time.Hour), nil))

	assert.Equal(t, -1.0, tc.HoursWorked)
}

func TestBreakTotal(t *testing.T) {
	base := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	breaks := []models.Break{
		{Start: base, End: base.Add(20 * time.Minute)},
		{Start: base.Add(3 * time.Hour), End: base.Add(3*time.Hour + 10*time.Minute)},
	}

	assert.Equal(t, 30*time.Minute, BreakTotal(breaks))
	assert.Equal(t, time.Duration(0), BreakTotal(nil))
}

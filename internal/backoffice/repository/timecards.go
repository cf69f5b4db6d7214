package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/medikart/backoffice/internal/backoffice/models"
)

// Timecard repository methods
func (r *PostgresRepository) CreateTimecard(ctx context.Context, tc *models.Timecard) (int64, error) {
	breaks, err := json.Marshal(breaksOrEmpty(tc.Breaks))
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db.QueryRowContext(
		ctx,
		`INSERT INTO timecards (staff_id, date, clock_in, clock_out, breaks, hours_worked)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		tc.StaffID, tc.Date, tc.ClockIn, tc.ClockOut, breaks, tc.HoursWorked,
	).Scan(&id)

	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *PostgresRepository) GetTimecardByID(ctx context.Context, id int64) (*models.Timecard, error) {
	return r.getTimecard(ctx, "id = $1", id)
}

// GetOpenTimecard returns the staff member's timecard for the date that has
// not yet been clocked out
func (r *PostgresRepository) GetOpenTimecard(ctx context.Context, staffID int64, date string) (*models.Timecard, error) {
	return r.getTimecard(ctx, "staff_id = $1 AND date = $2 AND clock_out IS NULL", staffID, date)
}

func (r *PostgresRepository) getTimecard(ctx context.Context, where string, args ...interface{}) (*models.Timecard, error) {
	tc := &models.Timecard{}
	var breaks []byte

	err := r.db.QueryRowContext(
		ctx,
		"SELECT id, staff_id, date, clock_in, clock_out, breaks, hours_worked FROM timecards WHERE "+where,
		args...,
	).Scan(&tc.ID, &tc.StaffID, &tc.Date, &tc.ClockIn, &tc.ClockOut, &breaks, &tc.HoursWorked)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(breaks, &tc.Breaks); err != nil {
		return nil, err
	}

	return tc, nil
}

func (r *PostgresRepository) SaveTimecardClockOut(ctx context.Context, tc *models.Timecard) error {
	breaks, err := json.Marshal(breaksOrEmpty(tc.Breaks))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(
		ctx,
		"UPDATE timecards SET clock_out = $1, breaks = $2, hours_worked = $3 WHERE id = $4",
		tc.ClockOut, breaks, tc.HoursWorked, tc.ID,
	)
	return err
}

func breaksOrEmpty(breaks []models.Break) []models.Break {
	if breaks == nil {
		return []models.Break{}
	}
	return breaks
}

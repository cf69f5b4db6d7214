package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/medikart/backoffice/internal/backoffice/models"
)

// Loyalty program repository methods
func (r *PostgresRepository) CreateProgram(ctx context.Context, p *models.LoyaltyProgram) (int64, error) {
	tiers, err := json.Marshal(tiersOrEmpty(p.Tiers))
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db.QueryRowContext(
		ctx,
		"INSERT INTO loyalty_programs (name, tiers, tier_basis) VALUES ($1, $2, $3) RETURNING id",
		p.Name, tiers, p.TierBasis,
	).Scan(&id)

	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *PostgresRepository) GetProgramByID(ctx context.Context, id int64) (*models.LoyaltyProgram, error) {
	p := &models.LoyaltyProgram{}
	var tiers []byte

	err := r.db.QueryRowContext(
		ctx,
		"SELECT id, name, tiers, tier_basis FROM loyalty_programs WHERE id = $1",
		id,
	).Scan(&p.ID, &p.Name, &tiers, &p.TierBasis)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(tiers, &p.Tiers); err != nil {
		return nil, err
	}

	return p, nil
}

// Membership repository methods
func (r *PostgresRepository) GetMembership(ctx context.Context, customerID, programID int64) (*models.Membership, error) {
	return r.getMembership(ctx,
		"customer_id = $1 AND program_id = $2 ORDER BY enrolled_at DESC LIMIT 1",
		customerID, programID)
}

func (r *PostgresRepository) GetMembershipByID(ctx context.Context, id string) (*models.Membership, error) {
	return r.getMembership(ctx, "id = $1", id)
}

func (r *PostgresRepository) getMembership(ctx context.Context, where string, args ...interface{}) (*models.Membership, error) {
	m := &models.Membership{}
	var history []byte

	err := r.db.QueryRowContext(
		ctx,
		`SELECT id, customer_id, program_id, balance, lifetime_points, tier, active, history, enrolled_at
		 FROM memberships WHERE `+where,
		args...,
	).Scan(&m.ID, &m.CustomerID, &m.ProgramID, &m.Balance, &m.LifetimePoints,
		&m.Tier, &m.Active, &history, &m.EnrolledAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(history, &m.History); err != nil {
		return nil, err
	}

	return m, nil
}

func (r *PostgresRepository) CreateMembership(ctx context.Context, m *models.Membership) error {
	history, err := json.Marshal(historyOrEmpty(m.History))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO memberships
		    (id, customer_id, program_id, balance, lifetime_points, tier, active, history, enrolled_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.CustomerID, m.ProgramID, m.Balance, m.LifetimePoints, m.Tier, m.Active, history, m.EnrolledAt,
	)
	return err
}

// SaveMembership persists the mutable part of a membership after an event
// has been applied
func (r *PostgresRepository) SaveMembership(ctx context.Context, m *models.Membership) error {
	history, err := json.Marshal(historyOrEmpty(m.History))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(
		ctx,
		"UPDATE memberships SET balance = $1, lifetime_points = $2, tier = $3, active = $4, history = $5 WHERE id = $6",
		m.Balance, m.LifetimePoints, m.Tier, m.Active, history, m.ID,
	)
	return err
}

func tiersOrEmpty(tiers []models.Tier) []models.Tier {
	if tiers == nil {
		return []models.Tier{}
	}
	return tiers
}

func historyOrEmpty(history []models.LoyaltyEvent) []models.LoyaltyEvent {
	if history == nil {
		return []models.LoyaltyEvent{}
	}
	return history
}

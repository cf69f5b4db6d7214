package service

import (
	"context"
	"testing"
	"time"

	"github.com/medikart/backoffice/internal/backoffice/models"
	"github.com/medikart/backoffice/internal/backoffice/repository"
	"github.com/stretchr/testify/assert"
)

type sweepStubRepo struct {
	repository.Repository

	pastDue       []models.Invoice
	markedOverdue []int64
	purged        int64
}

func (s *sweepStubRepo) ListInvoicesPastDue(ctx context.Context, now time.Time) ([]models.Invoice, error) {
	return s.pastDue, nil
}

func (s *sweepStubRepo) MarkInvoiceOverdue(ctx context.Context, id int64) error {
	s.markedOverdue = append(s.markedOverdue, id)
	return nil
}

func (s *sweepStubRepo) DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	s.purged = 3
	return 3, nil
}

func TestSweep(t *testing.T) {
	now := time.Now()
	repo := &sweepStubRepo{
		pastDue: []models.Invoice{
			{ID: 1, Number: "INV-1", Status: models.InvoiceStatusSent, DueAt: now.Add(-time.Hour)},
			{ID: 2, Number: "INV-2", Status: models.InvoiceStatusPartiallyPaid, DueAt: now.Add(-48 * time.Hour)},
		},
	}

	s := NewSweeper(repo)
	s.Sweep(now)

	assert.Equal(t, []int64{1, 2}, repo.markedOverdue)
	assert.Equal(t, int64(3), repo.purged)
}

func TestSweeperStartStop(t *testing.T) {
	s := NewSweeper(&sweepStubRepo{})
	s.interval = 10 * time.Millisecond

	s.Start()
	time.Sleep(25 * time.Millisecond)
	s.Stop()
}

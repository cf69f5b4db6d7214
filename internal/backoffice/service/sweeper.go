package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/medikart/backoffice/internal/backoffice/billing"
	"github.com/medikart/backoffice/internal/backoffice/repository"
)

// Sweeper runs periodic housekeeping in the background: marking invoices
// overdue once they pass their due date and purging expired reset tokens.
type Sweeper struct {
	repo     repository.Repository
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewSweeper creates a new sweeper
func NewSweeper(repo repository.Repository) *Sweeper {
	return &Sweeper{
		repo:     repo,
		interval: time.Minute,
		stopCh:   make(chan struct{}),
	}
}

// Start starts the sweeper
func (s *Sweeper) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.sweepLoop()
	}()
}

// Stop stops the sweeper
func (s *Sweeper) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

// sweepLoop is the main processing loop
func (s *Sweeper) sweepLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(time.Now())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep runs one housekeeping pass
func (s *Sweeper) Sweep(now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.markOverdueInvoices(ctx, now)
	s.purgeExpiredTokens(ctx, now)
}

func (s *Sweeper) markOverdueInvoices(ctx context.Context, now time.Time) {
	invoices, err := s.repo.ListInvoicesPastDue(ctx, now)
	if err != nil {
		log.Printf("Error listing past-due invoices: %v", err)
		return
	}

	for i := range invoices {
		inv := &invoices[i]
		if !billing.IsOverdue(inv, now) {
			continue
		}
		if err := s.repo.MarkInvoiceOverdue(ctx, inv.ID); err != nil {
			log.Printf("Error marking invoice %s overdue: %v", inv.Number, err)
		}
	}
}

func (s *Sweeper) purgeExpiredTokens(ctx context.Context, now time.Time) {
	purged, err := s.repo.DeleteExpiredResetTokens(ctx, now)
	if err != nil {
		log.Printf("Error purging expired reset tokens: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Purged %d expired reset tokens", purged)
	}
}

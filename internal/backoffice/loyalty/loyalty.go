package loyalty

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/medikart/backoffice/internal/backoffice/models"
)

var (
	// ErrAlreadyEnrolled is returned when a customer already holds an
	// active membership in the program
	ErrAlreadyEnrolled = errors.New("customer already enrolled in program")

	// ErrInsufficientPoints is returned when a redemption exceeds the
	// current balance
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrUnknownEventType is returned for an event type outside the fixed set
	ErrUnknownEventType = errors.New("unknown loyalty event type")
)

// DefaultTier is used when a program configures no tiers
const DefaultTier = "Standard"

// Enroll creates a membership for a (customer, program) pair. The existing
// membership, if any, must be supplied by the caller; an active one rejects
// the enrollment.
func Enroll(customerID int64, program *models.LoyaltyProgram, existing *models.Membership, now time.Time) (*models.Membership, error) {
	if existing != nil && existing.Active {
		return nil, ErrAlreadyEnrolled
	}

	tier := DefaultTier
	if len(program.Tiers) > 0 {
		tier = program.Tiers[0].Name
	}

	return &models.Membership{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		ProgramID:  program.ID,
		Balance:    0,
		Tier:       tier,
		Active:     true,
		EnrolledAt: now,
	}, nil
}

// ApplyEvent appends one history row to a membership and updates its balance,
// lifetime points and tier. A redeem exceeding the balance is rejected and
// the membership is left untouched.
func ApplyEvent(m *models.Membership, program *models.LoyaltyProgram, eventType string, points float64, description, reference string, now time.Time) error {
	var delta float64

	switch eventType {
	case models.EventEarn:
		delta = points
	case models.EventRedeem:
		if points > m.Balance {
			return fmt.Errorf("%w: redeem %v exceeds balance %v", ErrInsufficientPoints, points, m.Balance)
		}
		delta = -points
	case models.EventExpire:
		delta = -points
	case models.EventAdjust:
		delta = points // signed as given
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventType, eventType)
	}

	m.Balance += delta
	if eventType == models.EventEarn {
		m.LifetimePoints += points
	}

	m.History = append(m.History, models.LoyaltyEvent{
		Date:        now,
		Type:        eventType,
		Delta:       delta,
		Balance:     m.Balance,
		Description: description,
		Reference:   reference,
	})

	m.Tier = tierFor(m, program)

	return nil
}

// tierFor finds the highest configured tier whose threshold the membership
// has reached, on the basis the program selects.
func tierFor(m *models.Membership, program *models.LoyaltyProgram) string {
	basis := m.LifetimePoints
	if program.TierBasis == models.TierBasisBalance {
		basis = m.Balance
	}

	tier := DefaultTier
	if len(program.Tiers) > 0 {
		tier = program.Tiers[0].Name
	}

	best := -1.0
	for _, t := range program.Tiers {
		if t.Threshold <= basis && t.Threshold > best {
			best = t.Threshold
			tier = t.Name
		}
	}

	return tier
}

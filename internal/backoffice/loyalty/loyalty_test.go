package loyalty

import (
	"testing"
	"time"

	"github.com/medikart/backoffice/internal/backoffice/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tieredProgram(basis string) *models.LoyaltyProgram {
	return &models.LoyaltyProgram{
		ID:   1,
		Name: "MediKart Rewards",
		Tiers: []models.Tier{
			{Name: "Bronze", Threshold: 0},
			{Name: "Silver", Threshold: 500},
			{Name: "Gold", Threshold: 2000},
		},
		TierBasis: basis,
	}
}

func TestEnroll(t *testing.T) {
	program := tieredProgram(models.TierBasisLifetime)
	now := time.Now()

	m, err := Enroll(42, program, nil, now)
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, int64(42), m.CustomerID)
	assert.Equal(t, program.ID, m.ProgramID)
	assert.Equal(t, 0.0, m.Balance)
	assert.Equal(t, "Bronze", m.Tier)
	assert.True(t, m.Active)
	assert.Empty(t, m.History)
}

func TestEnrollNoTiers(t *testing.T) {
	program := &models.LoyaltyProgram{ID: 2, Name: "Plain"}

	m, err := Enroll(42, program, nil, time.Now())
	require.NoError(t, err)

	assert.Equal(t, DefaultTier, m.Tier)
}

func TestEnrollTwice(t *testing.T) {
	program := tieredProgram(models.TierBasisLifetime)
	now := time.Now()

	first, err := Enroll(42, program, nil, now)
	require.NoError(t, err)

	_, err = Enroll(42, program, first, now)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestEnrollAfterDeactivation(t *testing.T) {
	program := tieredProgram(models.TierBasisLifetime)
	now := time.Now()

	first, err := Enroll(42, program, nil, now)
	require.NoError(t, err)
	first.Active = false

	second, err := Enroll(42, program, first, now)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestApplyEventEarn(t *testing.T) {
	program := tieredProgram(models.TierBasisLifetime)
	m, _ := Enroll(42, program, nil, time.Now())

	err := ApplyEvent(m, program, models.EventEarn, 600, "order ORD-1", "ORD-1", time.Now())
	require.NoError(t, err)

	assert.Equal(t, 600.0, m.Balance)
	assert.Equal(t, 600.0, m.LifetimePoints)
	assert.Equal(t, "Silver", m.Tier)
	require.Len(t, m.History, 1)
	assert.Equal(t, models.EventEarn, m.History[0].Type)
	assert.Equal(t, 600.0, m.History[0].Delta)
	assert.Equal(t, 600.0, m.History[0].Balance)
}

func TestApplyEventRedeem(t *testing.T) {
	program := tieredProgram(models.TierBasisLifetime)
	m, _ := Enroll(42, program, nil, time.Now())
	require.NoError(t, ApplyEvent(m, program, models.EventEarn, 600, "", "", time.Now()))

	err := ApplyEvent(m, program, models.EventRedeem, 200, "checkout", "ORD-2", time.Now())
	require.NoError(t, err)

	assert.Equal(t, 400.0, m.Balance)
	// Lifetime points unaffected by redemption
	assert.Equal(t, 600.0, m.LifetimePoints)
	// Lifetime basis keeps the tier after redeeming
	assert.Equal(t, "Silver", m.Tier)
}

func TestApplyEventRedeemInsufficient(t *testing.T) {
	program := tieredProgram(models.TierBasisLifetime)
	m, _ := Enroll(42, program, nil, time.Now())
	require.NoError(t, ApplyEvent(m, program, models.EventEarn, 100, "", "", time.Now()))

	err := ApplyEvent(m, program, models.EventRedeem, 150, "", "", time.Now())

	assert.ErrorIs(t, err, ErrInsufficientPoints)
	// Ledger is left untouched on rejection
	assert.Equal(t, 100.0, m.Balance)
	assert.Len(t, m.History, 1)
}

func TestApplyEventExpireAndAdjust(t *testing.T) {
	program := tieredProgram(models.TierBasisLifetime)
	m, _ := Enroll(42, program, nil, time.Now())
	require.NoError(t, ApplyEvent(m, program, models.EventEarn, 300, "", "", time.Now()))

	require.NoError(t, ApplyEvent(m, program, models.EventExpire, 50, "quarterly expiry", "", time.Now()))
	assert.Equal(t, 250.0, m.Balance)

	require.NoError(t, ApplyEvent(m, program, models.EventAdjust, -30, "correction", "", time.Now()))
	assert.Equal(t, 220.0, m.Balance)

	require.NoError(t, ApplyEvent(m, program, models.EventAdjust, 10, "goodwill", "", time.Now()))
	assert.Equal(t, 230.0, m.Balance)

	// Only earn events count toward lifetime points
	assert.Equal(t, 300.0, m.LifetimePoints)
}

func TestApplyEventUnknownType(t *testing.T) {
	program := tieredProgram(models.TierBasisLifetime)
	m, _ := Enroll(42, program, nil, time.Now())

	err := ApplyEvent(m, program, "donate", 10, "", "", time.Now())

	assert.ErrorIs(t, err, ErrUnknownEventType)
	assert.Empty(t, m.History)
}

func TestBalanceEqualsHistorySum(t *testing.T) {
	program := tieredProgram(models.TierBasisLifetime)
	m, _ := Enroll(42, program, nil, time.Now())

	require.NoError(t, ApplyEvent(m, program, models.EventEarn, 500, "", "", time.Now()))
	require.NoError(t, ApplyEvent(m, program, models.EventRedeem, 120, "", "", time.Now()))
	require.NoError(t, ApplyEvent(m, program, models.EventEarn, 80, "", "", time.Now()))
	require.NoError(t, ApplyEvent(m, program, models.EventExpire, 60, "", "", time.Now()))

	var sum float64
	for _, event := range m.History {
		sum += event.Delta
	}
	assert.Equal(t, m.Balance, sum)
	assert.GreaterOrEqual(t, m.Balance, 0.0)
}

func TestTierBasisBalance(t *testing.T) {
	program := tieredProgram(models.TierBasisBalance)
	m, _ := Enroll(42, program, nil, time.Now())

	require.NoError(t, ApplyEvent(m, program, models.EventEarn, 2500, "", "", time.Now()))
	assert.Equal(t, "Gold", m.Tier)

	// Balance basis drops the tier when points are spent
	require.NoError(t, ApplyEvent(m, program, models.EventRedeem, 2200, "", "", time.Now()))
	assert.Equal(t, "Bronze", m.Tier)
}

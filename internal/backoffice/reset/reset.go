package reset

import (
	"errors"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/medikart/backoffice/internal/backoffice/models"
)

var (
	// ErrInvalidToken is returned when a presented token is missing,
	// mismatched or expired
	ErrInvalidToken = errors.New("invalid or expired reset token")

	// ErrWeakPassword is returned when a new password fails the strength check
	ErrWeakPassword = errors.New("password too weak")
)

const (
	// TokenTTL is how long a reset token stays valid
	TokenTTL = 15 * time.Minute

	// MinPasswordLength is the shortest acceptable password
	MinPasswordLength = 6

	// MinPasswordScore is the lowest acceptable strength score
	MinPasswordScore = 2
)

// NewToken issues a reset token for an email, valid for TokenTTL. Storing it
// overwrites any prior pending token for the same email.
func NewToken(email string, now time.Time) models.ResetToken {
	return models.ResetToken{
		Email:     email,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(TokenTTL),
	}
}

// Validate reports whether a presented token matches the stored one and has
// not expired. A nil stored token never validates.
func Validate(stored *models.ResetToken, presented string, now time.Time) bool {
	if stored == nil || presented == "" {
		return false
	}
	if !now.Before(stored.ExpiresAt) {
		return false
	}
	return stored.Token == presented
}

// PasswordStrength scores a password 0-4, one point each for a lowercase
// letter, an uppercase letter, a digit and a symbol.
func PasswordStrength(password string) int {
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	score := 0
	for _, ok := range []bool{lower, upper, digit, symbol} {
		if ok {
			score++
		}
	}
	return score
}

// CheckPassword applies the strength rules to a candidate password
func CheckPassword(password string) error {
	if len(password) < MinPasswordLength || PasswordStrength(password) < MinPasswordScore {
		return ErrWeakPassword
	}
	return nil
}

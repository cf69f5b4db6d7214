package reset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewToken(t *testing.T) {
	now := time.Now()

	tok := NewToken("staff@example.com", now)

	assert.Equal(t, "staff@example.com", tok.Email)
	assert.NotEmpty(t, tok.Token)
	assert.Equal(t, now.Add(15*time.Minute), tok.ExpiresAt)

	// Tokens are random per request
	assert.NotEqual(t, tok.Token, NewToken("staff@example.com", now).Token)
}

func TestValidate(t *testing.T) {
	now := time.Now()
	tok := NewToken("staff@example.com", now)

	assert.True(t, Validate(&tok, tok.Token, now))
	assert.True(t, Validate(&tok, tok.Token, now.Add(14*time.Minute)))
}

func TestValidateExpired(t *testing.T) {
	now := time.Now()
	tok := NewToken("staff@example.com", now)

	assert.False(t, Validate(&tok, tok.Token, now.Add(15*time.Minute)))
	assert.False(t, Validate(&tok, tok.Token, now.Add(time.Hour)))
}

func TestValidateMismatch(t *testing.T) {
	now := time.Now()
	tok := NewToken("staff@example.com", now)

	assert.False(t, Validate(&tok, "wrong-token", now))
	assert.False(t, Validate(&tok, "", now))
	assert.False(t, Validate(nil, tok.Token, now))
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		score    int
	}{
		{"", 0},
		{"abcdef", 1},
		{"ABCDEF", 1},
		{"123456", 1},
		{"abc123", 2},
		{"Abc123", 3},
		{"Abc123!", 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.score, PasswordStrength(tt.password), "password %q", tt.password)
	}
}

func TestCheckPassword(t *testing.T) {
	assert.NoError(t, CheckPassword("abc123"))
	assert.NoError(t, CheckPassword("Str0ng!pass"))

	// Too short even though varied
	assert.ErrorIs(t, CheckPassword("Ab1!"), ErrWeakPassword)
	// Long enough but single character class
	assert.ErrorIs(t, CheckPassword("abcdefgh"), ErrWeakPassword)
}

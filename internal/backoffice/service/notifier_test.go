package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/medikart/backoffice/internal/backoffice/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testToken() models.ResetToken {
	return models.ResetToken{
		Email:     "asha@example.com",
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}
}

func TestSendResetTokenNoGateway(t *testing.T) {
	n := NewNotifier("")

	assert.NoError(t, n.SendResetToken(context.Background(), testToken()))
}

func TestSendResetToken(t *testing.T) {
	var got struct {
		Email string `json:"email"`
		Token string `json:"token"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notifications/password-reset", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL)

	require.NoError(t, n.SendResetToken(context.Background(), testToken()))
	assert.Equal(t, "asha@example.com", got.Email)
	assert.Equal(t, "tok-1", got.Token)
}

func TestSendResetTokenRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL)

	err := n.SendResetToken(context.Background(), testToken())
	assert.ErrorContains(t, err, "rate limited")
}

func TestSendResetTokenGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL)

	err := n.SendResetToken(context.Background(), testToken())
	assert.ErrorContains(t, err, "status 500")
}

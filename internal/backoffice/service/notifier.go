package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/medikart/backoffice/internal/backoffice/models"
)

// Notifier delivers password-reset tokens to the email/SMS gateway
type Notifier struct {
	baseURL    string
	httpClient *http.Client
}

// NewNotifier creates a new notifier. An empty baseURL selects log-only
// delivery, for environments without a gateway.
func NewNotifier(baseURL string) *Notifier {
	return &Notifier{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendResetToken posts a reset token to the delivery gateway. The token is
// assumed to reach the account holder out of band.
func (n *Notifier) SendResetToken(ctx context.Context, token models.ResetToken) error {
	if n.baseURL == "" {
		log.Printf("notifier: no gateway configured, reset token for %s expires at %s", token.Email, token.ExpiresAt.Format(time.RFC3339))
		return nil
	}

	payload, err := json.Marshal(struct {
		Email     string    `json:"email"`
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}{
		Email:     token.Email,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/notifications/password-reset", n.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Handle rate limiting
	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := resp.Header.Get("Retry-After")
		if retryAfter != "" {
			seconds, err := strconv.Atoi(retryAfter)
			if err == nil {
				return fmt.Errorf("rate limited, retry after %d seconds", seconds)
			}
		}
		return fmt.Errorf("rate limited")
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("notification gateway returned status %d", resp.StatusCode)
	}

	return nil
}

package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/knitworks/garment_mgmt_app/internal/core/domain"
)

// Event is the JSON payload pushed to the configured webhook endpoint for
// every notification the system records.
type Event struct {
	NotificationID string    `json:"notificationID"`
	UserID         string    `json:"userID"`
	Type           string    `json:"type"`
	Message        string    `json:"message"`
	RelatedID      string    `json:"relatedID"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Client pushes notification events to an external webhook. Delivery is best
// effort; callers treat failures as log-only.
type Client struct {
	endpoint string
	http     *resty.Client
}

// NewClient creates a webhook client for the given endpoint. An empty
// endpoint yields a nil client, which callers interpret as "no webhook".
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		return nil
	}
	return &Client{
		endpoint: endpoint,
		http: resty.New().
			SetTimeout(5 * time.Second).
			SetRetryCount(2),
	}
}

// Send delivers one notification event.
func (c *Client) Send(ctx context.Context, n domain.Notification) error {
	event := Event{
		NotificationID: n.NotificationID,
		UserID:         n.UserID,
		Type:           string(n.Type),
		Message:        n.Message,
		RelatedID:      n.RelatedID,
		CreatedAt:      n.CreatedAt,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(c.endpoint)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode())
	}
	return nil
}

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultEndpoint is the FCM legacy HTTP send endpoint.
	DefaultEndpoint = "https://fcm.googleapis.com/fcm/send"

	sendTimeout = 10 * time.Second
)

type fcmMessage struct {
	To           string          `json:"to"`
	Notification fcmNotification `json:"notification"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Client is a thin FCM HTTP client authenticated with a server key.
type Client struct {
	serverKey  string
	endpoint   string
	httpClient *http.Client
}

func NewClient(serverKey, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		serverKey:  serverKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: sendTimeout},
	}
}

// Send pushes one notification to a device token.
func (c *Client) Send(ctx context.Context, token, title, body string) error {
	payload, err := json.Marshal(fcmMessage{
		To:           token,
		Notification: fcmNotification{Title: title, Body: body},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal FCM message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create FCM request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send FCM request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("FCM returned status %d: %s", resp.StatusCode, responseBody)
	}

	return nil
}

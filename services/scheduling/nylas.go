// File: services/scheduling/nylas.go
package scheduling

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"uprocket/config"
	"uprocket/models"
)

// Envelope is the response shape every Nylas v3 endpoint uses: exactly one
// of "data" or "error" is populated. Callers branch on which key is present
// and otherwise pass the payload through untouched.
type Envelope struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error json.RawMessage `json:"error,omitempty"`
}

// HasError reports whether the provider returned an error object.
func (e *Envelope) HasError() bool {
	return len(e.Error) > 0
}

// HasData reports whether the provider returned a data object.
func (e *Envelope) HasData() bool {
	return len(e.Data) > 0
}

// ErrorMessage extracts the provider's human-readable error message, falling
// back to the raw error body.
func (e *Envelope) ErrorMessage() string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Error, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return string(e.Error)
}

// DataID extracts the "id" field of the data object.
func (e *Envelope) DataID() (string, error) {
	var parsed struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(e.Data, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse provider data: %w", err)
	}
	if parsed.ID == "" {
		return "", fmt.Errorf("provider data has no id")
	}
	return parsed.ID, nil
}

// NylasAPI is the surface of the external scheduling provider this service
// depends on. Implemented by Client; faked in tests.
type NylasAPI interface {
	CreateSessionToken(ctx context.Context, grantID, configID string, ttlSeconds int) (*Envelope, error)
	GetConfiguration(ctx context.Context, grantID, configID string) (*Envelope, error)
	CreateConfiguration(ctx context.Context, grantID string, cfg models.SchedulingConfig) (*Envelope, error)
	UpdateConfiguration(ctx context.Context, grantID, configID string, cfg models.SchedulingConfig) (*Envelope, error)
	ListCalendars(ctx context.Context, grantID string) (*Envelope, error)
	BookTimeslot(ctx context.Context, sessionID string, slot models.Timeslot, info models.BookingInfo) (*Envelope, error)
	BookingAction(ctx context.Context, grantKey, bookingID, action string) (*Envelope, error)
}

// Client talks to the Nylas v3 API over plain HTTP with bearer-token auth.
type Client struct {
	APIKey           string
	APIBaseURL       string
	SchedulerBaseURL string
	HTTPClient       *http.Client
}

// NewClient builds a Client from AppConfig.
func NewClient() *Client {
	return &Client{
		APIKey:           config.AppConfig.NylasAPIKey,
		APIBaseURL:       config.AppConfig.NylasAPIURL,
		SchedulerBaseURL: config.AppConfig.NylasSchedulerAPIURL,
		HTTPClient:       &http.Client{Timeout: 15 * time.Second},
	}
}

// do issues one JSON request and decodes the provider envelope. Non-2xx
// statuses are not treated as transport errors; the envelope carries the
// provider's error object in that case.
func (c *Client) do(ctx context.Context, method, rawURL string, body any) (*Envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scheduling provider request failed: %w", err)
	}
	defer resp.Body.Close()

	var envelope Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	return &envelope, nil
}

// CreateSessionToken mints a short-lived scheduling session scoped to one
// configuration. Every call mints a new token; nothing is cached.
func (c *Client) CreateSessionToken(ctx context.Context, grantID, configID string, ttlSeconds int) (*Envelope, error) {
	u := fmt.Sprintf("%s/v3/grants/%s/scheduling/session_token", c.SchedulerBaseURL, grantID)
	body := map[string]any{
		"time_to_live": ttlSeconds,
		"config_id":    configID,
	}
	return c.do(ctx, http.MethodPost, u, body)
}

// GetConfiguration fetches one scheduling configuration.
func (c *Client) GetConfiguration(ctx context.Context, grantID, configID string) (*Envelope, error) {
	u := fmt.Sprintf("%s/v3/grants/%s/scheduling/configuration/%s", c.SchedulerBaseURL, grantID, configID)
	return c.do(ctx, http.MethodGet, u, nil)
}

// CreateConfiguration creates a scheduling configuration and returns the
// provider envelope holding the new configuration id.
func (c *Client) CreateConfiguration(ctx context.Context, grantID string, cfg models.SchedulingConfig) (*Envelope, error) {
	u := fmt.Sprintf("%s/v3/grants/%s/scheduling/configuration", c.SchedulerBaseURL, grantID)
	return c.do(ctx, http.MethodPost, u, map[string]any{"data": cfg})
}

// UpdateConfiguration replaces an existing scheduling configuration.
func (c *Client) UpdateConfiguration(ctx context.Context, grantID, configID string, cfg models.SchedulingConfig) (*Envelope, error) {
	u := fmt.Sprintf("%s/v3/grants/%s/scheduling/configuration/%s", c.SchedulerBaseURL, grantID, configID)
	return c.do(ctx, http.MethodPut, u, map[string]any{"data": cfg})
}

// ListCalendars lists the calendars behind a grant.
func (c *Client) ListCalendars(ctx context.Context, grantID string) (*Envelope, error) {
	u := fmt.Sprintf("%s/v3/grants/%s/calendars", c.APIBaseURL, grantID)
	return c.do(ctx, http.MethodGet, u, nil)
}

// BookTimeslot creates a pending (pre-booked) event for the selected slot,
// authorized by the session token rather than the grant.
func (c *Client) BookTimeslot(ctx context.Context, sessionID string, slot models.Timeslot, info models.BookingInfo) (*Envelope, error) {
	u := fmt.Sprintf("%s/v3/scheduling/bookings?session_id=%s", c.APIBaseURL, url.QueryEscape(sessionID))
	body := map[string]any{
		"start_time": slot.StartTime.Unix(),
		"end_time":   slot.EndTime.Unix(),
		"guest": map[string]string{
			"name":  info.PrimaryParticipant.Name,
			"email": info.PrimaryParticipant.Email,
		},
	}
	return c.do(ctx, http.MethodPost, u, body)
}

// BookingAction transitions a booking: action is "confirm" or "cancel".
// The grant key is the contractor's grant email.
func (c *Client) BookingAction(ctx context.Context, grantKey, bookingID, action string) (*Envelope, error) {
	u := fmt.Sprintf("%s/v3/grants/%s/scheduling/bookings/%s", c.SchedulerBaseURL, url.PathEscape(grantKey), bookingID)
	return c.do(ctx, http.MethodPut, u, map[string]string{"action": action})
}

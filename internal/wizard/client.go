package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to the collaborator service over its fixed HTTP surface.
// A cookie jar carries the session and captcha cookies between calls.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

// BaseURL returns the collaborator base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PaymentURL returns the address of the embedded payment surface.
func (c *Client) PaymentURL() string {
	return c.baseURL + "/payment"
}

// Login submits credentials. A non-success status is an auth rejection,
// never a state-changing failure.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "login", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ErrAuthRejected
	}
	return nil
}

// Dates fetches the ordered list of date labels.
func (c *Client) Dates(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/dates", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "dates fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrSessionExpired
	}

	var dates []string
	if err := json.NewDecoder(resp.Body).Decode(&dates); err != nil {
		return nil, fmt.Errorf("failed to decode dates: %w", err)
	}
	return dates, nil
}

// Seats fetches the current seat snapshot. Any non-success status is
// treated as session expiry.
func (c *Client) Seats(ctx context.Context) ([]Seat, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/seats", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "seats fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrSessionExpired
	}

	var seats []Seat
	if err := json.NewDecoder(resp.Body).Decode(&seats); err != nil {
		return nil, fmt.Errorf("failed to decode seats: %w", err)
	}
	return seats, nil
}

// FetchChallenge retrieves the challenge image behind ref, which must come
// from ChallengeState so the cache-busting token is carried along. The
// captcha id cookie set by the response stays in the jar for the finalize
// call.
func (c *Client) FetchChallenge(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+ref, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "challenge fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrSessionExpired
	}
	return io.ReadAll(resp.Body)
}

// Book issues the finalize call. A non-success status carries a
// human-readable reason in the body.
func (c *Client) Book(ctx context.Context, seatID, captcha string) error {
	body, err := json.Marshal(map[string]string{
		"seat_id": seatID,
		"captcha": captcha,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/book", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "finalize", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return &BookingRejectedError{Reason: resp.Status}
		}
		return &BookingRejectedError{Reason: strings.TrimSpace(string(reason))}
	}
	return nil
}

// PollPaymentEvents blocks on the collaborator's long-poll endpoint for
// the next payment sentinel. Returns the sentinel and true on delivery, or
// false when the poll window closed without one.
func (c *Client) PollPaymentEvents(ctx context.Context) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/payment/events", nil)
	if err != nil {
		return "", false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false, &TransportError{Op: "payment poll", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return "", false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("unexpected payment poll status: %s", resp.Status)
	}

	sentinel, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(string(sentinel)), true, nil
}

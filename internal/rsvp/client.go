// Package rsvp implements the RSVP core: the remote endpoint client, the
// guest-list fetcher, the reconciler that merges bundled and remote data, and
// the confirmation form state machine.
package rsvp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mikadarshika.com/wedding-web/internal/invite"
)

const defaultTimeout = 8 * time.Second

// ErrNotConfigured is returned when no remote endpoint is configured.
var ErrNotConfigured = errors.New("rsvp: no remote endpoint configured")

// Record is the authoritative guest list returned by the remote endpoint.
// Person names may be blank when the backend holds a degraded export; the
// reconciler decides what to do with those.
type Record struct {
	Title  string
	People []RecordPerson
}

// RecordPerson is one remote guest entry with its confirmation already
// normalized. The raw loosely-typed "confirmed" value never leaves the
// client.
type RecordPerson struct {
	Name   string
	Status invite.Confirmation
}

// Submission carries one complete confirmation write.
type Submission struct {
	InviteID string
	Title    string
	People   []Choice
}

// Choice is a single person's submitted attendance decision.
type Choice struct {
	Name      string
	Attending bool
}

// GuestSource reads the authoritative guest list for an invite.
type GuestSource interface {
	Lookup(ctx context.Context, inviteID string) (Record, error)
}

// Persister persists a completed selection.
type Persister interface {
	Persist(ctx context.Context, sub Submission) error
}

// Client talks to the remote RSVP endpoint. When baseURL is empty the client
// is inert and every call reports ErrNotConfigured; the site then runs
// entirely on bundled and local data.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient constructs a remote RSVP client. token is optional and sent as a
// bearer header when present.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// Configured reports whether a remote endpoint is set.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// Lookup fetches the guest list and current confirmation flags for inviteID.
func (c *Client) Lookup(ctx context.Context, inviteID string) (Record, error) {
	if !c.Configured() {
		return Record{}, ErrNotConfigured
	}
	endpoint := c.baseURL + "?" + url.Values{"inviteId": {inviteID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Record{}, err
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return Record{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return Record{}, fmt.Errorf("rsvp: lookup status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var payload recordPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Record{}, fmt.Errorf("rsvp: decode lookup response: %w", err)
	}
	return payload.toRecord(), nil
}

// Persist implements Persister against the remote endpoint.
//
// Response handling is strict: a non-2xx status, an unparseable body, or a
// non-empty error field all fail the submission. The submit performs no
// partial mutation, so a failed attempt is always safe to retry.
func (c *Client) Persist(ctx context.Context, sub Submission) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	body := submitPayload{
		InviteID: sub.InviteID,
		Title:    sub.Title,
	}
	for _, ch := range sub.People {
		confirmed := 0
		if ch.Attending {
			confirmed = 1
		}
		body.People = append(body.People, submitPerson{Name: ch.Name, Confirmed: confirmed})
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("rsvp: submit status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var result struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("rsvp: decode submit response: %w", err)
	}
	if result.Error != "" {
		return fmt.Errorf("rsvp: submit rejected: %s", result.Error)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

type recordPayload struct {
	Title  string `json:"title"`
	People []struct {
		Name      string `json:"name"`
		Confirmed any    `json:"confirmed"`
	} `json:"people"`
}

func (p recordPayload) toRecord() Record {
	rec := Record{Title: strings.TrimSpace(p.Title)}
	for _, rp := range p.People {
		rec.People = append(rec.People, RecordPerson{
			Name:   strings.TrimSpace(rp.Name),
			Status: invite.Normalize(rp.Confirmed),
		})
	}
	return rec
}

type submitPayload struct {
	InviteID string         `json:"inviteId"`
	Title    string         `json:"title"`
	People   []submitPerson `json:"people"`
}

type submitPerson struct {
	Name      string `json:"name"`
	Confirmed int    `json:"confirmed"`
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}

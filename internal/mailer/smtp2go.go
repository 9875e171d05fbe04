// Package mailer sends invite emails through the SMTP2GO transactional API.
package mailer

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
)

const defaultEndpoint = "https://api.smtp2go.com/v3/email/send"

// Config carries the SMTP2GO credentials and sender identity.
type Config struct {
	APIKey     string `env:"SMTP2GO_API_KEY"`
	TemplateID string `env:"SMTP2GO_TEMPLATE_ID"`
	From       string `env:"SMTP2GO_FROM"`
	FromName   string `env:"SMTP2GO_FROM_NAME" envDefault:"Mika & Darshika"`
	ReplyTo    string `env:"SMTP2GO_REPLY_TO"`
	BaseURL    string `env:"INVITE_BASE_URL" envDefault:"https://mikadarshika.com"`
	DryRun     bool   `env:"DRY_RUN"`
}

// Validate checks the required credentials are present.
func (c Config) Validate() error {
	if c.APIKey == "" || c.TemplateID == "" || c.From == "" {
		return errors.New("SMTP2GO_API_KEY, SMTP2GO_TEMPLATE_ID and SMTP2GO_FROM are required")
	}
	return nil
}

// Invitation is one personalized email to send.
type Invitation struct {
	InviteID string
	Title    string
	Name     string
	Email    string
}

// Client sends template emails via SMTP2GO.
type Client struct {
	cfg      Config
	endpoint string
	http     *http.Client
}

// NewClient builds a mailer client from config.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:      cfg,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

type sendPayload struct {
	APIKey        string            `json:"api_key"`
	To            []string          `json:"to"`
	Sender        string            `json:"sender"`
	TemplateID    string            `json:"template_id"`
	TemplateData  map[string]string `json:"template_data"`
	CustomHeaders []customHeader    `json:"custom_headers,omitempty"`
}

type customHeader struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}

// Send delivers one invitation email carrying the personalized invite link.
func (c *Client) Send(ctx context.Context, inv Invitation) error {
	replyTo := c.cfg.ReplyTo
	if replyTo == "" {
		replyTo = c.cfg.From
	}
	payload := sendPayload{
		APIKey:     c.cfg.APIKey,
		To:         []string{fmt.Sprintf("%s <%s>", inv.Name, inv.Email)},
		Sender:     fmt.Sprintf("%s <%s>", c.cfg.FromName, c.cfg.From),
		TemplateID: c.cfg.TemplateID,
		TemplateData: map[string]string{
			"title":      inv.Title,
			"inviteID":   inv.InviteID,
			"inviteLink": c.InviteLink(inv.InviteID),
		},
		CustomHeaders: []customHeader{
			{Header: "Reply-To", Value: fmt.Sprintf("%s <%s>", c.cfg.FromName, replyTo)},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("smtp2go status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

// InviteLink returns the personalized site URL for an invite id.
func (c *Client) InviteLink(inviteID string) string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	return fmt.Sprintf("%s/?invite=%s", base, url.QueryEscape(inviteID))
}

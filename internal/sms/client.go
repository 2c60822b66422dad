// Package sms talks to an HTTP SMS and voice gateway.
package sms

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"leadrouting_backend/platform/config"
	"leadrouting_backend/platform/logger"
	"leadrouting_backend/platform/phone"
)

type Client struct {
	baseURL  string
	apiKey   string
	senderID string
	region   string
	http     *http.Client
	log      *logger.Logger
}

type smsRequest struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Message string `json:"message"`
}

type callRequest struct {
	To     string `json:"to"`
	Speech string `json:"speech"`
}

// NewClient returns nil when no gateway URL is configured.
func NewClient(cfg config.SMSConfig, log *logger.Logger) *Client {
	if cfg.GetSMSGatewayURL() == "" {
		return nil
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.GetSMSGatewayURL(), "/"),
		apiKey:   cfg.GetSMSGatewayKey(),
		senderID: cfg.GetSMSSenderID(),
		region:   cfg.GetPhoneRegion(),
		http:     &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

// SendSMS sends a text message.
func (c *Client) SendSMS(ctx context.Context, phoneNumber, message string) error {
	if c == nil {
		return fmt.Errorf("sms gateway not configured")
	}

	to := phone.NormalizeE164ForRegion(phoneNumber, c.region)
	if err := c.post(ctx, "/sms/send", smsRequest{To: to, From: c.senderID, Message: message}); err != nil {
		return err
	}

	c.log.Info("sms sent via gateway", "phone", to)
	return nil
}

// PlaceCall asks the gateway to ring the number and read message aloud.
func (c *Client) PlaceCall(ctx context.Context, phoneNumber, message string) error {
	if c == nil {
		return fmt.Errorf("voice gateway not configured")
	}

	to := phone.NormalizeE164ForRegion(phoneNumber, c.region)
	if err := c.post(ctx, "/voice/call", callRequest{To: to, Speech: message}); err != nil {
		return err
	}

	c.log.Info("call placed via gateway", "phone", to)
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal gateway payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", formatAuthHeader(c.apiKey))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return nil
}

// formatAuthHeader accepts a full "Basic ..." or "Bearer ..." value, or a
// raw key which is sent as a bearer token.
func formatAuthHeader(apiKey string) string {
	lower := strings.ToLower(apiKey)
	if strings.HasPrefix(lower, "basic ") || strings.HasPrefix(lower, "bearer ") {
		return apiKey
	}
	if strings.Contains(apiKey, ":") {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(apiKey))
	}
	return "Bearer " + apiKey
}

package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"school-gate/app/database"
	"school-gate/app/models"
)

const (
	smsEndpoint = "https://app.mobile.net.sa/api/v1/send"
	smsTimeout  = 15 * time.Second

	// Literal fallbacks used when the settings rows are absent.
	defaultSMSAPIKey     = "Cg4W16D1N9ckkBXhUafP0gS19XB6ZujmMNC5rtkt1e2e6f1c"
	defaultSMSSenderName = "School1"
)

// SMSClient delivers one text message per call through the provider's HTTP
// API. It holds no state between calls; credentials are re-read from the
// settings table on every send so admin changes apply immediately.
type SMSClient struct {
	db       *sql.DB
	endpoint string
	client   *http.Client
}

func NewSMSClient(db *sql.DB) *SMSClient {
	return &SMSClient{
		db:       db,
		endpoint: smsEndpoint,
		client:   &http.Client{},
	}
}

// NewSMSClientWithEndpoint targets a non-default provider URL. Used by tests.
func NewSMSClientWithEndpoint(db *sql.DB, endpoint string) *SMSClient {
	c := NewSMSClient(db)
	c.endpoint = endpoint
	return c
}

type smsRequest struct {
	Number       string `json:"number"`
	SenderName   string `json:"senderName"`
	SendAtOption string `json:"sendAtOption"`
	MessageBody  string `json:"messageBody"`
}

// Send dispatches one message. Failures are normalized: provider rejections
// carry the status code and whatever message the error body yields, network
// faults collapse to the generic delivery-failure message. No retries.
func (c *SMSClient) Send(mobileNumber, body string) error {
	settings, err := database.GetSettings(c.db, "sms_api_key", "sms_sender_name")
	if err != nil {
		return fmt.Errorf("%w: read sms settings: %v", models.ErrPersistence, err)
	}
	apiKey := settings["sms_api_key"]
	if apiKey == "" {
		apiKey = defaultSMSAPIKey
	}
	senderName := settings["sms_sender_name"]
	if senderName == "" {
		senderName = defaultSMSSenderName
	}

	number := NormalizeNumber(mobileNumber)
	log.Printf("[SMS] Sending to %s via %s...", number, senderName)

	payload, err := json.Marshal(smsRequest{
		Number:       number,
		SenderName:   strings.TrimSpace(senderName),
		SendAtOption: "Now",
		MessageBody:  body,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), smsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(apiKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("Failed to send SMS: %v", err)
		smsSendTotal.WithLabelValues("network_error").Inc()
		return &models.UserError{Err: models.ErrUpstreamService, Message: "فشل إرسال الرسالة"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		log.Printf("SMS API error: %d %s", resp.StatusCode, raw)
		smsSendTotal.WithLabelValues("provider_error").Inc()
		return &models.UserError{
			Err:     models.ErrUpstreamService,
			Message: fmt.Sprintf("خطأ من مزود الخدمة (%d): %s", resp.StatusCode, providerErrorDetail(raw)),
		}
	}

	smsSendTotal.WithLabelValues("sent").Inc()
	return nil
}

// providerErrorDetail extracts a readable message from an error body: the
// JSON "message" field when present, the whole JSON object otherwise, or the
// first 100 characters of non-JSON text.
func providerErrorDetail(raw []byte) string {
	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if msg, ok := parsed["message"].(string); ok && msg != "" {
			return msg
		}
		compact, _ := json.Marshal(parsed)
		return string(compact)
	}
	text := string(raw)
	if len(text) > 100 {
		text = text[:100]
	}
	return text
}

// NormalizeNumber converts a Saudi local mobile number to international
// form: a leading 0 is dropped and 966 prefixed; a bare 5xxxxxxxx gets 966
// prefixed directly. Numbers starting with anything else pass through
// unchanged; the provider rejects what it cannot route.
func NormalizeNumber(mobileNumber string) string {
	number := strings.TrimSpace(mobileNumber)
	switch {
	case strings.HasPrefix(number, "0"):
		return "966" + number[1:]
	case strings.HasPrefix(number, "5"):
		return "966" + number
	default:
		return number
	}
}

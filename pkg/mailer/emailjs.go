package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client sends transactional mail through the EmailJS relay API
type Client struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a new EmailJS client instance
func NewClient(baseURL, serviceID, templateID, publicKey string, logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		ServiceID:  serviceID,
		TemplateID: templateID,
		PublicKey:  publicKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logger,
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send relays one templated email. Template params are the contact-form
// fields the template interpolates.
func (c *Client) Send(params map[string]string) error {
	payload, err := json.Marshal(sendRequest{
		ServiceID:      c.ServiceID,
		TemplateID:     c.TemplateID,
		UserID:         c.PublicKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("encode email request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/api/v1.0/email/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("Email relay request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		c.Logger.Error("Email relay rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(body)))
		return fmt.Errorf("email relay rejected message: %d %s", resp.StatusCode, string(body))
	}

	c.Logger.Info("Contact email relayed", zap.String("template_id", c.TemplateID))
	return nil
}

package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"homecare-booking-api/config"
)

// Mailer sends a templated email to a single recipient. Delivery is
// fire-and-forget from the engine's point of view: callers log failures and
// never let them affect a committed transition.
type Mailer interface {
	Send(ctx context.Context, templateID, recipient string, data map[string]string) error
}

// APIMailer implements Mailer against an HTTP transactional-mail API
type APIMailer struct {
	cfg        config.MailConfig
	engine     *TemplateEngine
	httpClient *http.Client
}

func NewAPIMailer(cfg config.MailConfig) *APIMailer {
	return &APIMailer{
		cfg:        cfg,
		engine:     NewTemplateEngine(),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type sendPayload struct {
	FromAddress string `json:"fromAddress"`
	FromName    string `json:"fromName,omitempty"`
	ToAddress   string `json:"toAddress"`
	Subject     string `json:"subject"`
	TextBody    string `json:"textBody"`
}

type sendResponse struct {
	ID      string `json:"id,omitempty"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (m *APIMailer) Send(ctx context.Context, templateID, recipient string, data map[string]string) error {
	subject, body, err := m.engine.Render(templateID, data)
	if err != nil {
		return err
	}

	payload := sendPayload{
		FromAddress: m.cfg.FromAddress,
		FromName:    m.cfg.FromName,
		ToAddress:   recipient,
		Subject:     subject,
		TextBody:    body,
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.APIBaseURL+"/email/send", bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		var apiResp sendResponse
		if json.Unmarshal(raw, &apiResp) == nil && apiResp.Error != "" {
			return fmt.Errorf("mail API error (%d): %s", resp.StatusCode, apiResp.Error)
		}
		return fmt.Errorf("mail API error (%d): %s", resp.StatusCode, string(raw))
	}

	return nil
}

// Package notify sends transactional emails through an EmailJS-compatible
// HTTP endpoint. All sends are best-effort: callers log failures and move on,
// an undeliverable email never affects a persisted order.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Params are the key-value substitutions for an email template.
type Params map[string]string

type Sender interface {
	Send(ctx context.Context, templateID, recipient string, params Params) error
}

// EmailSender posts to an EmailJS-style send endpoint.
type EmailSender struct {
	URL       string
	ServiceID string
	PublicKey string
	Client    *http.Client
}

func NewEmailSender(url, serviceID, publicKey string) *EmailSender {
	return &EmailSender{
		URL:       url,
		ServiceID: serviceID,
		PublicKey: publicKey,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (s *EmailSender) Send(ctx context.Context, templateID, recipient string, params Params) error {
	body := sendRequest{
		ServiceID:      s.ServiceID,
		TemplateID:     templateID,
		UserID:         s.PublicKey,
		TemplateParams: map[string]string{"to_email": recipient},
	}
	for k, v := range params {
		body.TemplateParams[k] = v
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify: send %s returned %d", templateID, resp.StatusCode)
	}
	return nil
}

// LogSender records the send instead of delivering it. Used when no
// notification credentials are configured and in tests.
type LogSender struct{}

func (LogSender) Send(_ context.Context, templateID, recipient string, params Params) error {
	logrus.WithFields(logrus.Fields{
		"template":  templateID,
		"recipient": recipient,
		"params":    params,
	}).Info("notify.log_only")
	return nil
}

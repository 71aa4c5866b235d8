package notifications

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase/interfaces"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	ErrMissingSendGridAPIKey = errors.New("missing SENDGRID_API_KEY")
	ErrMissingFromAddress    = errors.New("missing EMAIL_FROM_ADDRESS")
)

// RelayError is a non-2xx answer from the SendGrid API.
type RelayError struct {
	StatusCode int
	Body       string
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("sendgrid rejected message: status=%d body=%s", e.StatusCode, e.Body)
}

type SendGridConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}

// SendGridConfigFromEnv reads SENDGRID_API_KEY, EMAIL_FROM_ADDRESS and
// EMAIL_FROM_NAME.
func SendGridConfigFromEnv() SendGridConfig {
	name := os.Getenv("EMAIL_FROM_NAME")
	if name == "" {
		name = "Marketplace Billing"
	}
	return SendGridConfig{
		APIKey:      os.Getenv("SENDGRID_API_KEY"),
		FromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
		FromName:    name,
	}
}

// SendGridMailer delivers receipt emails through the SendGrid v3 API. In mock
// mode messages are only logged.
type SendGridMailer struct {
	config   SendGridConfig
	client   *sendgrid.Client
	mockMode bool
}

var _ interfaces.IEmailSender = (*SendGridMailer)(nil)

func NewSendGridMailer(cfg SendGridConfig) (*SendGridMailer, error) {
	if isEmailMockEnabled() {
		log.Printf("[email][sendgrid] mock mode enabled")
		return &SendGridMailer{config: cfg, mockMode: true}, nil
	}
	if cfg.APIKey == "" {
		log.Printf("[email][sendgrid] missing SENDGRID_API_KEY")
		return nil, ErrMissingSendGridAPIKey
	}
	if cfg.FromAddress == "" {
		log.Printf("[email][sendgrid] missing EMAIL_FROM_ADDRESS")
		return nil, ErrMissingFromAddress
	}
	return &SendGridMailer{config: cfg, client: sendgrid.NewSendClient(cfg.APIKey)}, nil
}

func (m *SendGridMailer) Send(ctx context.Context, email entities.Email) error {
	if m.mockMode {
		log.Printf("[email][sendgrid] mock send to=%s subject=%q attachments=%d", email.ToAddress, email.Subject, len(email.Attachments))
		return nil
	}

	resp, err := m.client.SendWithContext(ctx, m.buildMessage(email))
	if err != nil {
		log.Printf("[email][sendgrid] send failed to=%s err=%v", email.ToAddress, err)
		return err
	}
	if resp.StatusCode >= 300 {
		log.Printf("[email][sendgrid] send rejected to=%s status=%d", email.ToAddress, resp.StatusCode)
		return &RelayError{StatusCode: resp.StatusCode, Body: resp.Body}
	}
	log.Printf("[email][sendgrid] sent to=%s status=%d", email.ToAddress, resp.StatusCode)
	return nil
}

func (m *SendGridMailer) buildMessage(email entities.Email) *mail.SGMailV3 {
	from := mail.NewEmail(m.config.FromName, m.config.FromAddress)
	to := mail.NewEmail("", email.ToAddress)
	message := mail.NewSingleEmail(from, email.Subject, to, email.PlainBody, email.HTMLBody)

	for _, a := range email.Attachments {
		att := mail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(a.Content))
		att.SetType(a.ContentType)
		att.SetFilename(a.Filename)
		att.SetDisposition("attachment")
		message.AddAttachment(att)
	}
	return message
}

func isEmailMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("EMAIL_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

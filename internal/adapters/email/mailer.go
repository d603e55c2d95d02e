package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"eventlisting/config"
	"eventlisting/internal/domain"
)

const charset = "UTF-8"

// sesAPI is the part of the SES client the mailer calls.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// NewMailer builds the mailer selected by cfg.Provider. cfg is expected to have passed config validation.
func NewMailer(cfg config.EmailConfig, logger *slog.Logger) (domain.Mailer, error) {
	switch cfg.Provider {
	case config.EmailProviderSES:
		if cfg.InsecureSkipVerify {
			logger.Warn("SES TLS verification disabled", "region", cfg.AWSRegion)
		}
		source := (&mail.Address{Name: cfg.FromName, Address: cfg.FromAddress}).String()
		return &sesMailer{client: newSESClient(cfg), source: source, timeout: cfg.SendTimeout, logger: logger}, nil
	case config.EmailProviderNoop, "":
		return &noopMailer{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported email provider %q", cfg.Provider)
	}
}

func newSESClient(cfg config.EmailConfig) *ses.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		MinVersion:         tls.VersionTLS12,
	}
	creds := credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")
	return ses.NewFromConfig(aws.Config{
		Region:      cfg.AWSRegion,
		Credentials: aws.NewCredentialsCache(creds),
		HTTPClient:  &http.Client{Transport: transport},
	})
}

type sesMailer struct {
	client  sesAPI
	source  string
	timeout time.Duration
	logger  *slog.Logger
}

func (m *sesMailer) Send(ctx context.Context, msg *domain.OutgoingEmail) error {
	input, err := sendEmailInput(m.source, msg)
	if err != nil {
		return err
	}
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", msg.To, err)
	}
	m.logger.InfoContext(ctx, "email sent", "provider", config.EmailProviderSES, "message_id", aws.ToString(out.MessageId))
	return nil
}

// sendEmailInput maps a rendered message onto the SES request, leaving out empty bodies.
func sendEmailInput(source string, msg *domain.OutgoingEmail) (*ses.SendEmailInput, error) {
	if msg == nil || msg.To == "" {
		return nil, errors.New("email recipient is required")
	}
	if msg.HTML == "" && msg.Text == "" {
		return nil, errors.New("email body is empty")
	}
	body := &types.Body{}
	if msg.HTML != "" {
		body.Html = content(msg.HTML)
	}
	if msg.Text != "" {
		body.Text = content(msg.Text)
	}
	return &ses.SendEmailInput{
		Source:      aws.String(source),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message:     &types.Message{Subject: content(msg.Subject), Body: body},
	}, nil
}

func content(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String(charset)}
}

type noopMailer struct {
	logger *slog.Logger
}

func (m *noopMailer) Send(ctx context.Context, msg *domain.OutgoingEmail) error {
	m.logger.InfoContext(ctx, "email not sent (noop provider)", "to", msg.To, "subject", msg.Subject)
	return nil
}

package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Mailer sends the small set of account mails this service produces.
type Mailer interface {
	SendTemporaryPassword(ctx context.Context, to string, name string, password string) error
}

// SESMailer delivers through Amazon SES.
type SESMailer struct {
	client *sesv2.Client
	sender string
}

func NewSESMailer(ctx context.Context, region string, sender string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SESMailer{client: sesv2.NewFromConfig(cfg), sender: sender}, nil
}

func (m *SESMailer) SendTemporaryPassword(ctx context.Context, to string, name string, password string) error {
	subject := "Your temporary password"
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nYour password has been reset. Sign in with the temporary password below and change it right away.\r\n\r\n%s\r\n",
		name, password,
	)

	_, err := m.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send temporary password mail: %w", err)
	}

	return nil
}

// NoopMailer logs instead of sending. Used when mail is not configured and
// in tests.
type NoopMailer struct{}

func (NoopMailer) SendTemporaryPassword(_ context.Context, to string, _ string, _ string) error {
	slog.Warn("mail disabled; temporary password not sent", "to", to)
	return nil
}

package worker

import (
	"context"

	"github.com/pkg/errors"

	"github.com/traderacademy/backoffice/internal/config"
	emailProvider "github.com/traderacademy/backoffice/pkg/email"
)

type emailSender struct {
	sender emailProvider.Sender
	config config.EmailConfig
}

func newEmailSender(
	sender emailProvider.Sender,
	config config.EmailConfig,
) *emailSender {
	return &emailSender{
		sender: sender,
		config: config,
	}
}

type loginCodeEmailInput struct {
	FirstName string
	Code      string
}

func (s *emailSender) SendLoginCodeEmail(ctx context.Context, email string, firstName string, code string) error {
	if !s.config.Enabled {
		return nil
	}

	subject := "Your sign-in code"

	templateInput := loginCodeEmailInput{FirstName: firstName, Code: code}
	sendInput := emailProvider.SendEmailInput{Subject: subject, To: email}

	if err := sendInput.GenerateBodyFromHTML(s.config.Templates.LoginCode, templateInput); err != nil {
		return errors.Wrap(err, "generate login code email")
	}

	if err := s.sender.Send(sendInput); err != nil {
		return errors.Wrap(err, "send login code email")
	}

	return nil
}

type notificationEmailInput struct {
	Body string
}

func (s *emailSender) SendNotificationEmail(ctx context.Context, email string, subject string, body string) error {
	if !s.config.Enabled {
		return nil
	}

	templateInput := notificationEmailInput{Body: body}
	sendInput := emailProvider.SendEmailInput{Subject: subject, To: email}

	if err := sendInput.GenerateBodyFromHTML(s.config.Templates.Notification, templateInput); err != nil {
		return errors.Wrap(err, "generate notification email")
	}

	if err := s.sender.Send(sendInput); err != nil {
		return errors.Wrap(err, "send notification email")
	}

	return nil
}

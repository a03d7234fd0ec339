package worker

import (
	"context"

	"github.com/traderacademy/backoffice/internal/config"
	emailProvider "github.com/traderacademy/backoffice/pkg/email"
)

type Workers struct {
	EmailSender EmailSender
}

type Deps struct {
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type EmailSender interface {
	SendLoginCodeEmail(ctx context.Context, email string, firstName string, code string) error
	SendNotificationEmail(ctx context.Context, email string, subject string, body string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender: newEmailSender(deps.EmailProvider, deps.Config.Email),
	}
}

package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/traderacademy/backoffice/internal/config"
	emailProvider "github.com/traderacademy/backoffice/pkg/email"
	mockEmail "github.com/traderacademy/backoffice/pkg/email/mock"
)

func setupTemplates(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "templates", "login_code.html"),
		[]byte("<p>Hi {{.FirstName}}, your code is {{.Code}}</p>"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "templates", "notification.html"),
		[]byte("<div>{{.Body}}</div>"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		Enabled: true,
		Templates: config.EmailTemplates{
			LoginCode:    "login_code.html",
			Notification: "notification.html",
		},
	}
}

func TestSendLoginCodeEmail(t *testing.T) {
	setupTemplates(t)

	sender := new(mockEmail.EmailSender)
	sender.On("Send", mock.MatchedBy(func(inp emailProvider.SendEmailInput) bool {
		return inp.To == "admin@example.com" &&
			inp.Subject == "Your sign-in code" &&
			inp.Body == "<p>Hi Dana, your code is 123456</p>"
	})).Return(nil)

	s := newEmailSender(sender, testEmailConfig())

	err := s.SendLoginCodeEmail(context.Background(), "admin@example.com", "Dana", "123456")
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestSendNotificationEmail(t *testing.T) {
	setupTemplates(t)

	sender := new(mockEmail.EmailSender)
	sender.On("Send", mock.MatchedBy(func(inp emailProvider.SendEmailInput) bool {
		return inp.Subject == "Market update" && inp.Body == "<div>BTC levels to watch</div>"
	})).Return(nil)

	s := newEmailSender(sender, testEmailConfig())

	err := s.SendNotificationEmail(context.Background(), "lead@example.com", "Market update", "BTC levels to watch")
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestSendSkippedWhenDisabled(t *testing.T) {
	sender := new(mockEmail.EmailSender)

	cfg := testEmailConfig()
	cfg.Enabled = false
	s := newEmailSender(sender, cfg)

	// No template read, no send attempt.
	err := s.SendLoginCodeEmail(context.Background(), "admin@example.com", "Dana", "123456")
	assert.NoError(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything)
}

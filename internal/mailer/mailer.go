package mailer

import (
	"fmt"
	"io"

	"github.com/openims/ims-server/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers HTML reports over SMTP. Delivery is best-effort: the
// server never blocks a report response on a mail failure.
type Mailer struct {
	cfg config.MailConfig
}

func New(cfg config.MailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// ManagerEmail is the default recipient for operational reports.
func (m *Mailer) ManagerEmail() string {
	return m.cfg.ManagerEmail
}

// SendReport emails the rendered HTML report as an attachment named
// <filename>.html. Disabled transports and delivery errors are logged and
// swallowed.
func (m *Mailer) SendReport(recipient, subject, body, html, filename string) {
	if !m.cfg.Enabled {
		zap.L().Debug("mail transport disabled, skipping report email",
			zap.String("recipient", recipient),
			zap.String("subject", subject))
		return
	}
	if recipient == "" {
		zap.L().Warn("no recipient configured for report email",
			zap.String("subject", subject))
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.Attach(fmt.Sprintf("%s.html", filename),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write([]byte(html))
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {"text/html"}}))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		zap.L().Error("failed to send report email",
			zap.String("recipient", recipient),
			zap.String("subject", subject),
			zap.Error(err))
		return
	}
	zap.L().Info("report email sent",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
		zap.String("attachment", filename+".html"))
}

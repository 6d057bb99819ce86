package service

import (
	"context"
	"fmt"

	"dealer-payment-service/config"
	"dealer-payment-service/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// MailNotifier implements ports.Notifier over SMTP. Delivery runs in a
// detached goroutine; failures are logged and swallowed so they can
// never affect a committed financial write.
type MailNotifier struct {
	cfg config.MailConfig
	log zerolog.Logger
}

// NewMailNotifier creates a new MailNotifier.
func NewMailNotifier(cfg config.MailConfig, log zerolog.Logger) *MailNotifier {
	return &MailNotifier{cfg: cfg, log: log}
}

// PaymentSucceeded sends the payment-success notification email.
func (n *MailNotifier) PaymentSucceeded(_ context.Context, t *domain.Transaction) {
	if !n.cfg.Enabled || n.cfg.To == "" {
		return
	}
	// Copy what the mail needs; the caller may keep mutating t.
	code, gateway, amount := t.Code, t.Gateway, t.Amount
	go func() {
		msg := mail.NewMsg()
		if err := msg.From(n.cfg.From); err != nil {
			n.log.Warn().Err(err).Msg("mail: invalid from address")
			return
		}
		if err := msg.To(n.cfg.To); err != nil {
			n.log.Warn().Err(err).Msg("mail: invalid to address")
			return
		}
		msg.Subject(fmt.Sprintf("Payment received: %s", code))
		msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
			"Transaction %s via %s settled for %d VND.", code, gateway, amount))

		client, err := mail.NewClient(n.cfg.Host,
			mail.WithPort(n.cfg.Port),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
		if err != nil {
			n.log.Warn().Err(err).Msg("mail: client init failed")
			return
		}
		if err := client.DialAndSend(msg); err != nil {
			n.log.Warn().Err(err).Str("code", code).Msg("mail: delivery failed")
			return
		}
		n.log.Info().Str("code", code).Msg("mail: payment notification sent")
	}()
}

package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"wildquest/internal/shared/config"
	"wildquest/pkg/logger"
)

// EmailSender delivers rendered notifications.
type EmailSender interface {
	Send(ctx context.Context, notification *Notification) error
}

type smtpSender struct {
	cfg config.EmailConfig
	log *logger.Logger
}

func NewSMTPSender(cfg config.EmailConfig, log *logger.Logger) (EmailSender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host not configured")
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("from email not configured")
	}
	return &smtpSender{cfg: cfg, log: log}, nil
}

func (s *smtpSender) Send(ctx context.Context, notification *Notification) error {
	textBody := renderText(notification)
	message := buildMessage(s.cfg.FromEmail, notification.RecipientEmail, notification.Subject, textBody)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	if err := s.sendWithSTARTTLS(addr, auth, notification.RecipientEmail, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.log.Debug("email sent", "to", notification.RecipientEmail, "type", notification.Type)
	return nil
}

func (s *smtpSender) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsConfig := &tls.Config{ServerName: s.cfg.SMTPHost}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := client.Mail(s.cfg.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return w.Close()
}

func buildMessage(from, to, subject, textBody string) []byte {
	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)

	message := "From: WildQuest Adventures <" + from + ">\r\n"
	message += "To: " + to + "\r\n"
	message += "Subject: " + subject + "\r\n"
	message += "MIME-Version: 1.0\r\n"
	message += "Date: " + time.Now().Format(time.RFC1123Z) + "\r\n"
	message += "Content-Type: multipart/alternative; boundary=" + boundary + "\r\n"
	message += "\r\n"
	message += "--" + boundary + "\r\n"
	message += "Content-Type: text/plain; charset=UTF-8\r\n\r\n"
	message += textBody + "\r\n"
	message += "--" + boundary + "--\r\n"

	return []byte(message)
}

func renderText(n *Notification) string {
	data := n.TemplateData

	switch n.Type {
	case TypeBookingConfirmed:
		return fmt.Sprintf(
			"Hi %s,\n\nYour booking for %s has been received.\nBooking reference: %v\nParticipants: %v\nTotal amount: KES %.2f\n\nWe will be in touch about payment shortly.\n\nWildQuest Adventures",
			n.RecipientName, data["event_title"], data["booking_id"], data["participants"], data["total_amount"],
		)
	case TypeBookingCancelled:
		return fmt.Sprintf(
			"Hi %s,\n\nYour booking for %s has been cancelled.\nBooking reference: %v\n\nIf this was not expected, please contact us.\n\nWildQuest Adventures",
			n.RecipientName, data["event_title"], data["booking_id"],
		)
	case TypePaymentCompleted:
		return fmt.Sprintf(
			"Hi %s,\n\nWe received your payment of KES %.2f.\nBooking reference: %v\n\nThank you!\n\nWildQuest Adventures",
			n.RecipientName, data["amount"], data["booking_id"],
		)
	case TypeWhatsAppRequestReceived:
		return fmt.Sprintf(
			"New WhatsApp booking request.\n\nEvent: %v\nCustomer: %v\nPhone: %v\n\nFollow up from the back office.",
			data["event_title"], data["customer_name"], data["customer_phone"],
		)
	default:
		return fmt.Sprintf("Hi %s,\n\n%s\n\nWildQuest Adventures", n.RecipientName, n.Subject)
	}
}

// LogSender is a drop-in sender for environments without SMTP.
type LogSender struct {
	Log *logger.Logger
}

func (l *LogSender) Send(ctx context.Context, notification *Notification) error {
	l.Log.Info("email (dry run)",
		"to", notification.RecipientEmail,
		"subject", notification.Subject,
		"type", notification.Type,
	)
	return nil
}

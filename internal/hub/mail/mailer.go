// Package mail renders and sends transactional email. Delivery is always
// best-effort from the caller's point of view; in environments without an
// SMTP host the mailer logs the message instead of sending it.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/smtp"
	"net/textproto"

	"github.com/projecthub/projecthub/internal/hub/domain"
)

type Config struct {
	Host     string // empty host enables console mode
	Port     int
	Username string
	Password string
	From     string

	// FrontendBaseURL is the SPA origin the acceptance link points at.
	FrontendBaseURL string
}

type Mailer struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// AcceptURL builds the shareable acceptance link for a raw invitation token.
func (m *Mailer) AcceptURL(token string) string {
	return fmt.Sprintf("%s/accept-invitation/%s", m.cfg.FrontendBaseURL, token)
}

// SendInvitationEmail renders the HTML and plain-text invitation email and
// delivers it. In console mode the rendered link is logged instead.
func (m *Mailer) SendInvitationEmail(
	ctx context.Context,
	inv domain.Invitation,
	token string,
	inviterName string,
) error {
	data := invitationEmailData{
		InviterName: inviterName,
		Role:        inv.Role,
		Department:  inv.Department,
		Message:     inv.Message,
		AcceptURL:   m.AcceptURL(token),
		ExpiresAt:   inv.ExpiresAt.Format("Jan 2, 2006 15:04 MST"),
	}

	subject := fmt.Sprintf("%s invited you to join ProjectHub", inviterName)

	if m.cfg.Host == "" {
		m.logger.Info("console mailer: invitation email",
			"to", inv.Email,
			"subject", subject,
			"accept_url", data.AcceptURL,
		)
		return nil
	}

	body, err := renderInvitationEmail(data)
	if err != nil {
		return fmt.Errorf("render invitation email: %w", err)
	}

	return m.send(ctx, inv.Email, subject, body)
}

// send delivers a multipart/alternative message over SMTP.
func (m *Mailer) send(ctx context.Context, to, subject string, body renderedEmail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg bytes.Buffer
	writer := multipart.NewWriter(&msg)

	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", writer.Boundary())

	textPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/plain; charset="UTF-8"`},
	})
	if err != nil {
		return err
	}
	if _, err := textPart.Write([]byte(body.Text)); err != nil {
		return err
	}

	htmlPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/html; charset="UTF-8"`},
	})
	if err != nil {
		return err
	}
	if _, err := htmlPart.Write([]byte(body.HTML)); err != nil {
		return err
	}

	if err := writer.Close(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg.Bytes())
}

// Package notify delivers submission notifications to the recipients an
// editor configured on a form block.
package notify

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"sort"
	"strings"
)

// Submission carries the data handed to a notifier after a form passed
// validation.
type Submission struct {
	FormName   string
	Recipients []string
	Data       map[string]string
	SenderIP   string
}

// Notifier delivers a submission notification.
type Notifier interface {
	Notify(ctx context.Context, submission Submission) error
}

// Log writes submissions to a log.Logger. It is the default notifier for
// local development and the CLI.
type Log struct {
	Logger *log.Logger
}

// Notify logs the submission summary. A nil logger falls back to the
// standard logger.
func (l *Log) Notify(ctx context.Context, submission Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("form %q submitted: %s", submission.FormName, formatData(submission.Data))
	return nil
}

// SMTP sends a plain-text notification mail per submission.
type SMTP struct {
	addr string
	from string
	auth smtp.Auth
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// SMTPOption customises the SMTP notifier.
type SMTPOption func(*SMTP)

// WithAuth sets the SMTP authentication used for delivery.
func WithAuth(auth smtp.Auth) SMTPOption {
	return func(n *SMTP) {
		n.auth = auth
	}
}

// WithSendFunc swaps the delivery function, mainly for tests.
func WithSendFunc(send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error) SMTPOption {
	return func(n *SMTP) {
		if send != nil {
			n.send = send
		}
	}
}

// NewSMTP constructs an SMTP notifier delivering through the given server.
func NewSMTP(addr, from string, options ...SMTPOption) (*SMTP, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, fmt.Errorf("notify: smtp address is required")
	}
	if strings.TrimSpace(from) == "" {
		return nil, fmt.Errorf("notify: smtp sender is required")
	}
	n := &SMTP{addr: addr, from: from, send: smtp.SendMail}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(n)
	}
	return n, nil
}

// Notify mails the submission to every configured recipient. Submissions
// without recipients are a no-op.
func (n *SMTP) Notify(ctx context.Context, submission Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	recipients := cleanRecipients(submission.Recipients)
	if len(recipients) == 0 {
		return nil
	}

	msg := buildMessage(n.from, recipients, submission)
	if err := n.send(n.addr, n.auth, n.from, recipients, msg); err != nil {
		return fmt.Errorf("notify: send mail for form %q: %w", submission.FormName, err)
	}
	return nil
}

func cleanRecipients(recipients []string) []string {
	out := make([]string, 0, len(recipients))
	for _, recipient := range recipients {
		recipient = strings.TrimSpace(recipient)
		if recipient == "" {
			continue
		}
		out = append(out, recipient)
	}
	return out
}

func buildMessage(from string, to []string, submission Submission) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: New submission for %s\r\n", submission.FormName)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Form %q received a submission", submission.FormName)
	if submission.SenderIP != "" {
		fmt.Fprintf(&b, " from %s", submission.SenderIP)
	}
	b.WriteString(".\r\n\r\n")

	names := make([]string, 0, len(submission.Data))
	for name := range submission.Data {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s\r\n", name, submission.Data[name])
	}
	return []byte(b.String())
}

func formatData(data map[string]string) string {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%q", name, data[name]))
	}
	return strings.Join(parts, " ")
}

package notify_test

import (
	"bytes"
	"context"
	"log"
	"net/smtp"
	"strings"
	"testing"

	"github.com/goliatone/go-formblocks/pkg/notify"
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	notifier := &notify.Log{Logger: log.New(&buf, "", 0)}

	err := notifier.Notify(context.Background(), notify.Submission{
		FormName: "contact",
		Data:     map[string]string{"field-2": "Jane", "field-3": "true"},
	})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	line := buf.String()
	if !strings.Contains(line, `form "contact" submitted`) {
		t.Errorf("log line missing form name: %s", line)
	}
	if !strings.Contains(line, `field-2="Jane"`) {
		t.Errorf("log line missing field data: %s", line)
	}
}

func TestSMTPNotifier(t *testing.T) {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  []byte
	)
	notifier, err := notify.NewSMTP("mail.example.com:587", "forms@example.com",
		notify.WithSendFunc(func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("NewSMTP() error = %v", err)
	}

	err = notifier.Notify(context.Background(), notify.Submission{
		FormName:   "contact",
		Recipients: []string{"ops@example.com", " ", "sales@example.com"},
		Data:       map[string]string{"field-2": "Jane"},
		SenderIP:   "203.0.113.9",
	})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if gotAddr != "mail.example.com:587" || gotFrom != "forms@example.com" {
		t.Errorf("delivery target = %q from %q", gotAddr, gotFrom)
	}
	if len(gotTo) != 2 || gotTo[0] != "ops@example.com" || gotTo[1] != "sales@example.com" {
		t.Errorf("recipients = %v, blank entries should be dropped", gotTo)
	}
	body := string(gotMsg)
	for _, want := range []string{
		"Subject: New submission for contact",
		"from 203.0.113.9",
		"field-2: Jane",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("message missing %q:\n%s", want, body)
		}
	}
}

func TestSMTPNotifierSkipsWithoutRecipients(t *testing.T) {
	called := false
	notifier, err := notify.NewSMTP("mail.example.com:587", "forms@example.com",
		notify.WithSendFunc(func(string, smtp.Auth, string, []string, []byte) error {
			called = true
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("NewSMTP() error = %v", err)
	}

	if err := notifier.Notify(context.Background(), notify.Submission{FormName: "contact"}); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if called {
		t.Error("expected no delivery attempt without recipients")
	}
}

func TestNewSMTPValidation(t *testing.T) {
	if _, err := notify.NewSMTP("", "forms@example.com"); err == nil {
		t.Error("expected error for missing address")
	}
	if _, err := notify.NewSMTP("mail.example.com:587", ""); err == nil {
		t.Error("expected error for missing sender")
	}
}

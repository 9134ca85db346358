package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"emptrack_backend/internals/configs"
	"emptrack_backend/internals/features/meetings/meetings/model"
)

type Recipient struct {
	Name  string
	Email string
}

// Notifier delivers meeting invitations.
type Notifier interface {
	SendInvites(ctx context.Context, m model.MeetingModel, organizer string, to []Recipient) error
}

// NoopNotifier is used when SMTP is not configured.
type NoopNotifier struct{}

func (NoopNotifier) SendInvites(context.Context, model.MeetingModel, string, []Recipient) error {
	return nil
}

type SMTPNotifier struct {
	From   string
	Loc    *time.Location
	dialer *gomail.Dialer
}

// NewNotifierFromEnv reads SMTP_HOST/PORT/USER/PASSWORD/FROM. Without SMTP_HOST
// invitations are skipped.
func NewNotifierFromEnv() Notifier {
	host := configs.GetEnv("SMTP_HOST")
	if host == "" {
		log.Println("[INFO] SMTP_HOST not set, meeting invitations disabled")
		return NoopNotifier{}
	}
	user := configs.GetEnv("SMTP_USER")
	return &SMTPNotifier{
		From:   configs.GetEnv("SMTP_FROM", user),
		Loc:    configs.Location(),
		dialer: gomail.NewDialer(host, configs.GetEnvInt("SMTP_PORT", 587), user, configs.GetEnv("SMTP_PASSWORD")),
	}
}

// SendInvites opens one SMTP connection for the whole batch.
func (n *SMTPNotifier) SendInvites(ctx context.Context, m model.MeetingModel, organizer string, to []Recipient) error {
	if len(to) == 0 {
		return nil
	}
	sc, err := n.dialer.Dial()
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer sc.Close()

	var failed []string
	for _, r := range to {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := BuildInviteMessage(n.From, m, organizer, r, n.Loc)
		if err := gomail.Send(sc, msg); err != nil {
			log.Printf("[WARN] invite to %s failed: %v", r.Email, err)
			failed = append(failed, r.Email)
		}
		msg.Reset()
	}
	if len(failed) > 0 {
		return fmt.Errorf("invitations not delivered to %s", strings.Join(failed, ", "))
	}
	return nil
}

func BuildInviteMessage(from string, m model.MeetingModel, organizer string, r Recipient, loc *time.Location) *gomail.Message {
	if loc == nil {
		loc = time.UTC
	}
	start := m.StartTime.In(loc)
	end := m.EndTime.In(loc)

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", firstNonEmpty(r.Name, r.Email))
	fmt.Fprintf(&body, "%s invited you to \"%s\".\n\n", firstNonEmpty(organizer, "A colleague"), m.Title)
	fmt.Fprintf(&body, "When: %s - %s (%s)\n", start.Format("Mon, 02 Jan 2006 15:04"), end.Format("15:04"), start.Location())
	if m.MeetingLink != nil {
		fmt.Fprintf(&body, "Link: %s\n", *m.MeetingLink)
	}
	if m.Description != nil {
		fmt.Fprintf(&body, "\n%s\n", *m.Description)
	}
	body.WriteString("\nPlease accept or decline the invitation in EmpTrack.\n")

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetAddressHeader("To", r.Email, r.Name)
	msg.SetHeader("Subject", "Invitation: "+m.Title)
	msg.SetBody("text/plain", body.String())
	return msg
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

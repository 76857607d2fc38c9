package relay

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Resend delivers contact messages to the agency inbox through Resend.
type Resend struct {
	client *resend.Client
	from   string
	inbox  string
}

func NewResend(client *resend.Client, from, inbox string) *Resend {
	return &Resend{
		client: client,
		from:   from,
		inbox:  inbox,
	}
}

func (r *Resend) Name() string {
	return "resend"
}

func (r *Resend) Send(ctx context.Context, msg Message) error {
	subject, body := contactEmailTemplate(msg.Params)

	params := &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{r.inbox},
		ReplyTo: msg.Params.Email,
		Subject: subject,
		Text:    body,
	}

	_, err := r.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}

func contactEmailTemplate(p TemplateParams) (subject, body string) {
	subject = fmt.Sprintf("New contact from %s", p.Name)
	body = fmt.Sprintf(`New message from the website contact form.

Name:  %s
Email: %s

%s
`, p.Name, p.Email, p.Message)
	return subject, body
}

package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/keighl/postmark"
)

// PostmarkMailer delivers mail through the Postmark API.
type PostmarkMailer struct {
	client *postmark.Client
	from   string
}

func NewPostmark(serverToken, from string) *PostmarkMailer {
	return &PostmarkMailer{
		client: postmark.NewClient(serverToken, ""),
		from:   from,
	}
}

func (p *PostmarkMailer) Send(_ context.Context, msg Message) error {
	email := postmark.Email{
		From:     p.from,
		To:       strings.Join(msg.To, ","),
		Subject:  msg.Subject,
		TextBody: msg.Body,
	}

	if msg.Attachment != nil {
		email.Attachments = []postmark.Attachment{{
			Name:        msg.Attachment.Name,
			ContentType: msg.Attachment.ContentType,
			Content:     base64.StdEncoding.EncodeToString(msg.Attachment.Content),
		}}
	}

	if _, err := p.client.SendEmail(email); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}

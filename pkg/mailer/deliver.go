package mailer

import (
	"context"
	"errors"
	"fmt"

	mailtpl "github.com/oksasatya/ward-admin/pkg/mailer/templates"
)

// Jobs failing with these errors will never succeed on retry.
var (
	ErrNoRecipient = errors.New("email job has no recipient")
	ErrRender      = errors.New("email template render failed")
)

// Deliver renders job when it names a template, then hands it to s.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	if job.To == "" {
		return ErrNoRecipient
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrRender, job.Template, err)
		}
	}
	return s.Send(ctx, job.To, subject, text, html)
}

// Permanent reports whether err means the job should be dropped rather than requeued.
func Permanent(err error) bool {
	return errors.Is(err, ErrNoRecipient) || errors.Is(err, ErrRender)
}

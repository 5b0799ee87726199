package queue

import (
	"context"

	"github.com/oksasatya/ward-admin/internal/domain/entity"
	"github.com/oksasatya/ward-admin/pkg/mailer"
	mailtpl "github.com/oksasatya/ward-admin/pkg/mailer/templates"
)

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ApprovalNotifier enqueues the "account approved" email for the email worker.
type ApprovalNotifier struct {
	Pub      Publisher
	AppName  string
	LoginURL string
	Enabled  bool
}

func NewApprovalNotifier(pub Publisher, appName, loginURL string, enabled bool) *ApprovalNotifier {
	return &ApprovalNotifier{Pub: pub, AppName: appName, LoginURL: loginURL, Enabled: enabled}
}

func (n *ApprovalNotifier) NotifyApproved(ctx context.Context, u entity.User) error {
	if n == nil || !n.Enabled || n.Pub == nil || u.Email == "" {
		return nil
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.UserApproved,
		Data: mailtpl.ToMap(mailtpl.EmailData{
			Name:      u.Name,
			Email:     u.Email,
			AppName:   n.AppName,
			RoleLabel: u.Role.Label(),
			LoginURL:  n.LoginURL,
		}),
	}
	return n.Pub.PublishJSON(ctx, job)
}

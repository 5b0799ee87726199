package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/ward-admin/pkg/mailer/templates"
)

type sent struct {
	to, subject, text, html string
}

type fakeSender struct {
	out []sent
	err error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.out = append(f.out, sent{to, subject, text, html})
	return f.err
}

func TestDeliverRendersTemplate(t *testing.T) {
	s := &fakeSender{}
	job := EmailJob{
		To:       "nurse@example.test",
		Template: mailtpl.UserApproved,
		Data:     mailtpl.ToMap(mailtpl.EmailData{Name: "Sato", AppName: "Ward Admin", RoleLabel: "Ward manager", LoginURL: "https://wards.example.test/login"}),
	}
	require.NoError(t, Deliver(context.Background(), s, job))
	require.Len(t, s.out, 1)
	assert.Equal(t, "nurse@example.test", s.out[0].to)
	assert.NotEmpty(t, s.out[0].subject)
	assert.Contains(t, s.out[0].text, "Ward manager")
	assert.Contains(t, s.out[0].html, "https://wards.example.test/login")
}

func TestDeliverRawBody(t *testing.T) {
	s := &fakeSender{}
	require.NoError(t, Deliver(context.Background(), s, EmailJob{To: "a@example.test", Subject: "hi", Text: "plain"}))
	assert.Equal(t, sent{"a@example.test", "hi", "plain", ""}, s.out[0])
}

func TestDeliverFailures(t *testing.T) {
	s := &fakeSender{}

	err := Deliver(context.Background(), s, EmailJob{Template: mailtpl.UserApproved})
	assert.ErrorIs(t, err, ErrNoRecipient)
	assert.True(t, Permanent(err))

	err = Deliver(context.Background(), s, EmailJob{To: "a@example.test", Template: "no_such_template"})
	assert.ErrorIs(t, err, ErrRender)
	assert.True(t, Permanent(err))
	assert.Empty(t, s.out)

	s.err = errors.New("mailgun 503")
	err = Deliver(context.Background(), s, EmailJob{To: "a@example.test", Subject: "x", Text: "y"})
	assert.EqualError(t, err, "mailgun 503")
	assert.False(t, Permanent(err))
}

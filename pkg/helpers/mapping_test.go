package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/ward-admin/pkg/mailer"
)

func TestEnsureRecipientAndEmail(t *testing.T) {
	job := mailer.EmailJob{To: "a@example.test"}
	EnsureRecipientAndEmail(&job)
	assert.Equal(t, "a@example.test", job.Data["Email"])
	assert.Equal(t, "a@example.test", job.Data["RecipientEmail"])

	job = mailer.EmailJob{To: "a@example.test", Data: map[string]any{"Email": "b@example.test"}}
	EnsureRecipientAndEmail(&job)
	assert.Equal(t, "b@example.test", job.Data["Email"])
}

func TestSetIfEmpty(t *testing.T) {
	data := map[string]any{"CompanyName": "", "SupportURL": "https://help.example.test"}
	SetIfEmpty(data, "CompanyName", "General Hospital")
	SetIfEmpty(data, "SupportURL", "https://other.example.test")
	SetIfEmpty(data, "LoginURL", "https://login.example.test")

	assert.Equal(t, "General Hospital", data["CompanyName"])
	assert.Equal(t, "https://help.example.test", data["SupportURL"])
	assert.Equal(t, "https://login.example.test", data["LoginURL"])
}

package helpers

import (
	"fmt"

	"github.com/oksasatya/ward-admin/pkg/mailer"
)

// EnsureRecipientAndEmail fills Email and RecipientEmail in job.Data from job.To.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	SetIfEmpty(job.Data, "Email", job.To)
	SetIfEmpty(job.Data, "RecipientEmail", job.To)
}

// SetIfEmpty sets data[key] when it is missing or renders as an empty string.
func SetIfEmpty(data map[string]any, key string, value any) {
	if v, ok := data[key]; ok && v != nil && fmt.Sprintf("%v", v) != "" {
		return
	}
	data[key] = value
}

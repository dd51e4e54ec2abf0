package mailer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/veridia/authgate/internal/mailer"
)

// MockEmailSender is a mock implementation of EmailSender for testing.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, params mailer.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := mailer.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Recuperá tu contraseña",
		BodyHTML: "<p>hola</p>",
		Tag:      "password-recovery",
	}

	tests := []struct {
		name    string
		mutate  func(p *mailer.SendEmailParams)
		wantErr bool
	}{
		{"valid params", func(p *mailer.SendEmailParams) {}, false},
		{"valid without tag", func(p *mailer.SendEmailParams) { p.Tag = "" }, false},
		{"missing recipient", func(p *mailer.SendEmailParams) { p.SendTo = "" }, true},
		{"invalid recipient", func(p *mailer.SendEmailParams) { p.SendTo = "not-an-email" }, true},
		{"recipient with display name", func(p *mailer.SendEmailParams) { p.SendTo = "Ana <ana@example.com>" }, true},
		{"missing subject", func(p *mailer.SendEmailParams) { p.Subject = "" }, true},
		{"missing body", func(p *mailer.SendEmailParams) { p.BodyHTML = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params := valid
			tt.mutate(&params)

			err := params.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, mailer.ErrInvalidParams)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

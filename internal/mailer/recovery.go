package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

// recoverySubject is fixed: the recovery mail is always sent in Spanish,
// matching the product's primary audience.
const recoverySubject = "Recuperá tu contraseña"

// recoveryTemplate is the one transactional message the service sends, kept
// inline rather than behind a template pipeline.
var recoveryTemplate = template.Must(template.New("recovery").Parse(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"></head>
<body style="font-family: Arial, Helvetica, sans-serif; color: #222; max-width: 560px; margin: 0 auto; padding: 24px;">
  <h2 style="margin: 0 0 16px;">Recuperá tu contraseña</h2>
  <p>Recibimos un pedido para restablecer la contraseña de tu cuenta.</p>
  <p style="margin: 24px 0;">
    <a href="{{.Link}}" style="background: #2563eb; color: #ffffff; text-decoration: none; padding: 12px 20px; border-radius: 6px; display: inline-block;">Restablecer contraseña</a>
  </p>
  <p>Si el botón no funciona, copiá y pegá este enlace en tu navegador:</p>
  <p style="word-break: break-all;"><a href="{{.Link}}">{{.Link}}</a></p>
  <p>También podés usar este código directamente:</p>
  <p style="word-break: break-all; background: #f3f4f6; padding: 8px 12px; border-radius: 4px; font-family: monospace;">{{.Token}}</p>
  <p>El enlace vence en una hora. Si no pediste este cambio, ignorá este correo.</p>
</body>
</html>
`))

type recoveryData struct {
	Link  string
	Token string
}

// RecoveryMail composes the password-recovery email and hands it to a
// sender. One send per call; delivery failures surface to the caller.
type RecoveryMail struct {
	sender         EmailSender
	frontendOrigin string
}

// NewRecoveryMail binds the composer to a sender and the frontend origin the
// reset link points at.
func NewRecoveryMail(sender EmailSender, frontendOrigin string) *RecoveryMail {
	return &RecoveryMail{
		sender:         sender,
		frontendOrigin: strings.TrimRight(frontendOrigin, "/"),
	}
}

// Send mails the reset link carrying the token to the address.
func (m *RecoveryMail) Send(ctx context.Context, to, resetToken string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.frontendOrigin, url.QueryEscape(resetToken))

	var body bytes.Buffer
	if err := recoveryTemplate.Execute(&body, recoveryData{Link: link, Token: resetToken}); err != nil {
		return fmt.Errorf("%w: render body: %v", ErrDeliveryFailed, err)
	}

	return m.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   to,
		Subject:  recoverySubject,
		BodyHTML: body.String(),
		Tag:      "password-recovery",
	})
}

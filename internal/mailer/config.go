package mailer

// Config holds the outbound-email settings. ServerToken is optional so that
// development environments fall back to the file-writing sender; the
// Postmark constructor enforces the fields it needs.
type Config struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	SenderEmail  string `env:"EMAIL_SENDER"`
	SupportEmail string `env:"SUPPORT_EMAIL"`
}

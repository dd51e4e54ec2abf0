// Package mailer sends the service's transactional email through Postmark,
// or to local files when no server token is configured. The only message the
// service currently sends is the password-recovery mail.
package mailer

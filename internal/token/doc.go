// Package token issues and verifies the service's signed tokens: session
// tokens proving a completed authentication, and short-lived password-reset
// tokens. Both are HS256 JWTs over one process-wide secret. Verification is
// signature plus expiry; there is no revocation list.
//
// The two purposes share the secret, so every token carries a kind claim and
// the verifier rejects cross-purpose use.
package token

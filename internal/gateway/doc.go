// Package gateway orchestrates the service's auth flows across the identity
// provider, the profile store, the token service, and the recovery mailer.
// Each operation is one pass: normalize, validate, call collaborators in
// order, map failures onto the package's error taxonomy. The service holds
// no state and issues no background work, so operations are safe to run
// concurrently without coordination.
package gateway

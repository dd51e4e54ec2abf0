// Package profile persists the service's user records in MongoDB. Documents
// are keyed by the canonical identity id, so the store never needs a
// secondary index for the hot path.
package profile

package api

import (
	"time"

	"github.com/veridia/authgate/internal/profile"
)

// profilePayload is the wire shape of a profile. Clients predate the
// canonical field names, so each renamed field is also emitted under its
// old camel-case alias.
type profilePayload struct {
	ID        string    `json:"id"`
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	FirstName string    `json:"firstName"`
	Lastname  string    `json:"lastname"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

func newProfilePayload(p profile.Profile) profilePayload {
	return profilePayload{
		ID:        p.ID,
		UID:       p.ID,
		Name:      p.Name,
		FirstName: p.Name,
		Lastname:  p.Lastname,
		LastName:  p.Lastname,
		Email:     p.Email,
		Age:       p.Age,
		Provider:  p.Provider,
		CreatedAt: p.CreatedAt,
	}
}

// sessionEnvelope answers register and both login variants.
type sessionEnvelope struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    profilePayload `json:"user"`
}

// profileEnvelope answers profile reads and updates. Message is omitted on
// plain reads.
type profileEnvelope struct {
	Message string         `json:"message,omitempty"`
	User    profilePayload `json:"user"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Secret is one vault entry: a named username/password pair. The password
// field is an opaque string from the server's point of view; clients are
// expected to encrypt it before it ever reaches the API. The owning account
// is not part of the payload: ownership is carried by the repository scope
// and can never be reassigned through an update.
type Secret struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"-"`
}

// Validate enforces the field constraints checked before any storage access:
// every field required, name ≤20, username ≤50, password ≤250 characters.
func (s Secret) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 20)),
		validation.Field(&s.Username, validation.Required, validation.Length(1, 50)),
		validation.Field(&s.Password, validation.Required, validation.Length(1, 250)),
	)
}

// SecretSummary is the redacted listing projection: id and name only. It has
// no username or password fields at all, so the confidentiality contract of
// the listing endpoint cannot be violated by serialization.
type SecretSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

package models

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Notification is an administrative broadcast. It is transient: validated,
// fanned out to connected subscribers, and never persisted. AdminEmail is
// the sender's account email, filled in by the server from the authenticated
// subject rather than trusted from the request payload.
type Notification struct {
	AdminEmail  string `json:"adminEmail"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate requires a well-formed sender email and non-empty title and
// description.
func (n Notification) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.AdminEmail, validation.Required, is.Email),
		validation.Field(&n.Title, validation.Required),
		validation.Field(&n.Description, validation.Required),
	)
}

package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// registerPayload is the body of POST /users. Password length is checked
// here, against the plain password, because the stored value is a hash.
type registerPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p registerPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, validation.Length(1, 50), is.Email),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 40)),
	)
}

// loginPayload is the body of POST /users/login. No format rules: a
// malformed login attempt is just a failed login, not a validation error.
type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p loginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required),
		validation.Field(&p.Password, validation.Required),
	)
}

// checkEmailPayload is the body of POST /users/check-email.
type checkEmailPayload struct {
	Email string `json:"email"`
}

func (p checkEmailPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
	)
}

// notificationPayload is the body of POST /notifications/send. The sender
// email is not part of the payload; it comes from the authenticated subject.
type notificationPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (p notificationPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Description, validation.Required),
	)
}

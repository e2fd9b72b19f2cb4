package forms

import (
	"net/url"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"compendi/internal/config"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// LoginForm carries a login submission.
type LoginForm struct {
	Username string
	Password string
	Remember bool
}

// ParseLoginForm builds a LoginForm from submitted values.
func ParseLoginForm(values url.Values) LoginForm {
	return LoginForm{
		Username: field(values, "username"),
		Password: values.Get("password"),
		Remember: values.Get("remember") == "on" || values.Get("remember") == "true",
	}
}

// Validate checks the login form. Login validation is deliberately shallow;
// whether the credentials are any good is the auth service's call.
func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required),
		validation.Field(&f.Password, validation.Required),
	)
}

// RegisterForm carries a registration submission.
type RegisterForm struct {
	Email    string
	Username string
	Password string
}

// ParseRegisterForm builds a RegisterForm from submitted values.
func ParseRegisterForm(values url.Values) RegisterForm {
	return RegisterForm{
		Email:    field(values, "email"),
		Username: field(values, "username"),
		Password: values.Get("password"),
	}
}

// Validate checks the registration form.
func (f RegisterForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Username,
			validation.Required,
			validation.Length(1, config.MaxUsernameLength),
			validation.Match(usernamePattern).Error("may only contain letters, digits and underscores"),
		),
		validation.Field(&f.Password,
			validation.Required,
			validation.Length(config.MinPasswordLength, 0),
		),
	)
}

// Package auth models the login and signup forms: field-level validation
// before submission and the fail-open email-availability check.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"vitrine/internal/catalog"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoginForm carries the login fields.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// SignupForm carries the signup fields.
type SignupForm struct {
	Name     string `validate:"required,min=2,max=64"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Confirm  string `validate:"required,eqfield=Password"`
}

// Validate checks the login fields. The returned map is keyed by field
// name; an empty map means the form may submit.
func (f LoginForm) Validate() map[string]string {
	return fieldErrors(validate.Struct(f))
}

// Validate checks the signup fields.
func (f SignupForm) Validate() map[string]string {
	return fieldErrors(validate.Struct(f))
}

// Credentials converts the form into the API payload.
func (f LoginForm) Credentials() catalog.Credentials {
	return catalog.Credentials{Email: strings.TrimSpace(f.Email), Password: f.Password}
}

// Credentials converts the form into the API payload.
func (f SignupForm) Credentials() catalog.Credentials {
	return catalog.Credentials{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
}

// fieldErrors flattens validator output into field -> message.
func fieldErrors(err error) map[string]string {
	if err == nil {
		return map[string]string{}
	}
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out[""] = err.Error()
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "not a valid email address"
	case "min":
		if fe.Field() == "Password" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("too short (min %s)", fe.Param())
	case "max":
		return fmt.Sprintf("too long (max %s)", fe.Param())
	case "eqfield":
		return "passwords do not match"
	}
	return fe.Tag()
}

// EmailAvailable asks the API whether an address is free to register.
// The check fails open: a transient failure must never block signup, so
// errors are logged and the address reported as available.
func EmailAvailable(ctx context.Context, client catalog.Authenticator, log *zap.Logger, email string) bool {
	if log == nil {
		log = zap.NewNop()
	}
	available, err := client.CheckEmail(ctx, email)
	if err != nil {
		log.Warn("email availability check failed, assuming available", zap.Error(err))
		return true
	}
	return available
}

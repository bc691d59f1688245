// Package provision creates new user accounts from the admin panel: it
// validates the input, creates the identity, then writes the profile
// document. The two writes are deliberately not atomic; a created identity
// with a failed profile write still counts as success and the login-time
// backfill repairs the missing document.
package provision

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/irislab/irismapper-admin/internal/db/models"
	"github.com/irislab/irismapper-admin/internal/identity"
	"github.com/irislab/irismapper-admin/internal/profile"
)

// User-facing validation messages.
const (
	msgAllFieldsRequired = "All fields are required"
	msgPasswordTooShort  = "Password must be at least 8 characters"
)

// Input is the account creation form.
type Input struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required,min=8"`
}

// ValidationError carries the user-facing message for a rejected input.
type ValidationError struct {
	Message string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return e.Message
}

// Provisioner creates accounts.
type Provisioner struct {
	gateway  identity.Gateway
	store    profile.Store
	validate *validator.Validate
}

// New creates a provisioner.
func New(gateway identity.Gateway, store profile.Store) *Provisioner {
	return &Provisioner{
		gateway:  gateway,
		store:    store,
		validate: validator.New(),
	}
}

// Create provisions a new user. Validation failures return a
// ValidationError before any backend call. An identity creation failure
// surfaces as an error with no profile written. A profile write failure
// after a created identity is logged and the call still succeeds.
func (p *Provisioner) Create(ctx context.Context, in Input, actor string) (*identity.Session, error) {
	if err := p.validateInput(in); err != nil {
		return nil, err
	}

	session, err := p.gateway.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	err = p.store.Set(ctx, &models.Profile{
		UID:          session.UID,
		Name:         in.Name,
		Email:        in.Email,
		Status:       models.StatusActive,
		IsAdmin:      false,
		CreatedAt:    now,
		LastModified: now,
		ModifiedBy:   actor,
	})
	if err != nil {
		log.Warn().Err(err).Str("uid", session.UID).
			Msg("account created but profile write failed, will backfill at first login")
	}

	return session, nil
}

// validateInput maps the first failing rule to its user-facing message.
func (p *Provisioner) validateInput(in Input) error {
	err := p.validate.Struct(in)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &ValidationError{Message: msgAllFieldsRequired}
	}

	if errs[0].Tag() == "min" {
		return &ValidationError{Message: msgPasswordTooShort}
	}

	return &ValidationError{Message: msgAllFieldsRequired}
}

// Package profile defines the profile document store consumed by the guard,
// the roster and the provisioner, and the presenter for the profile page.
package profile

import (
	"context"
	"errors"

	"github.com/irislab/irismapper-admin/internal/db/models"
)

var (
	// ErrNotFound is returned when no profile document exists for an identity.
	ErrNotFound = errors.New("profile not found")
)

// Store is the profile document store surface.
type Store interface {
	// Get returns the profile for the given identity, or ErrNotFound.
	Get(ctx context.Context, uid string) (*models.Profile, error)
	// All returns every profile document.
	All(ctx context.Context) ([]*models.Profile, error)
	// Set creates or replaces the profile for its UID.
	Set(ctx context.Context, p *models.Profile) error
	// UpdateStatus writes a new activation status together with the audit
	// fields (lastModified, modifiedBy).
	UpdateStatus(ctx context.Context, uid string, status models.Status, modifiedBy string) error
	// FindAdminByEmail returns the admin flagged profile with the given email,
	// or ErrNotFound. Used once, for the bootstrap admin lookup.
	FindAdminByEmail(ctx context.Context, email string) (*models.Profile, error)
}

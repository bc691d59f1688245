// Package profile provides the gorm backed profile document store.
package profile

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/irislab/irismapper-admin/internal/db/models"
	"github.com/irislab/irismapper-admin/internal/profile"
)

const (
	uidQueryPattern = "uid = ?"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrUIDEmpty is returned when an operation is attempted with an empty uid.
	ErrUIDEmpty = errors.New("profile uid cannot be empty")
)

// Controller implements profile.Store on top of gorm.
type Controller struct {
	db *gorm.DB
}

var _ profile.Store = (*Controller)(nil)

// New creates a new profile store controller.
func New(db *gorm.DB) *Controller {
	return &Controller{db: db}
}

// Get retrieves a profile by its uid.
func (c *Controller) Get(ctx context.Context, uid string) (*models.Profile, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}
	if uid == "" {
		return nil, ErrUIDEmpty
	}

	var p models.Profile
	result := c.db.WithContext(ctx).Where(uidQueryPattern, uid).First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, profile.ErrNotFound
		}
		return nil, result.Error
	}

	return &p, nil
}

// All retrieves all profile documents.
func (c *Controller) All(ctx context.Context) ([]*models.Profile, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	var profiles []*models.Profile
	result := c.db.WithContext(ctx).Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}

	return profiles, nil
}

// Set creates or replaces the profile document for its uid (upsert operation).
func (c *Controller) Set(ctx context.Context, p *models.Profile) error {
	if c.db == nil {
		return ErrDBNil
	}
	if p == nil || p.UID == "" {
		return ErrUIDEmpty
	}

	var existing models.Profile
	result := c.db.WithContext(ctx).Where(uidQueryPattern, p.UID).First(&existing)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return c.db.WithContext(ctx).Create(p).Error
	}
	if result.Error != nil {
		return result.Error
	}

	return c.db.WithContext(ctx).Save(p).Error
}

// UpdateStatus writes a new activation status plus the audit fields.
func (c *Controller) UpdateStatus(
	ctx context.Context,
	uid string,
	status models.Status,
	modifiedBy string,
) error {
	if c.db == nil {
		return ErrDBNil
	}
	if uid == "" {
		return ErrUIDEmpty
	}

	result := c.db.WithContext(ctx).Model(&models.Profile{}).
		Where(uidQueryPattern, uid).
		Updates(map[string]interface{}{
			"status":        status,
			"last_modified": time.Now().UTC(),
			"modified_by":   modifiedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return profile.ErrNotFound
	}

	return nil
}

// FindAdminByEmail returns the admin flagged profile with the given email.
func (c *Controller) FindAdminByEmail(ctx context.Context, email string) (*models.Profile, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	var p models.Profile
	result := c.db.WithContext(ctx).
		Where("email = ? AND is_admin = ?", email, true).
		First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, profile.ErrNotFound
		}
		return nil, result.Error
	}

	return &p, nil
}

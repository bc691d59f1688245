package models

import (
	"strings"
	"time"
)

// Status represents the activation state of a user profile.
type Status string

const (
	// StatusActive marks a profile whose account may use the main application.
	StatusActive Status = "active"
	// StatusInactive marks a deactivated profile. Deactivation is advisory for
	// the main application; it is enforced only at sign-in.
	StatusInactive Status = "inactive"
)

// Flip returns the opposite activation status.
func (s Status) Flip() Status {
	if s == StatusActive {
		return StatusInactive
	}

	return StatusActive
}

// Profile is the persisted user document. There is exactly one profile per
// identity; UID mirrors the identity gateway account id.
type Profile struct {
	// UID is the identity the profile belongs to.
	UID string `gorm:"primaryKey;size:64"`
	// Name is the display name, defaulted from the email local part when absent.
	Name string `gorm:"size:255"`
	// Email mirrors the identity gateway email.
	Email string `gorm:"size:255;not null"`
	// Status is the activation state (active or inactive).
	Status Status `gorm:"type:varchar(16);not null;default:'active'"`
	// IsAdmin grants admin panel access. Never writable through the UI.
	IsAdmin bool `gorm:"not null;default:false"`
	// CreatedAt is set once at creation.
	CreatedAt time.Time
	// LastModified is updated on every status change.
	LastModified time.Time
	// ModifiedBy is the email of the actor performing the last write.
	ModifiedBy string `gorm:"size:255"`
}

// DisplayName returns the profile name, falling back to the local part of the
// email address when no name is set.
func (p *Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}

	return EmailLocalPart(p.Email)
}

// Active reports whether the profile status is active.
func (p *Profile) Active() bool {
	return p.Status == StatusActive
}

// EmailLocalPart returns the part of an email address before the "@".
func EmailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}

	return email
}

// Package roster arranges the user list for the admin panel: status and text
// filtering, persisted sorting, and a controller tying the pieces to a view.
package roster

import (
	"strings"

	"github.com/irislab/irismapper-admin/internal/db/models"
)

// Filter narrows the roster by status and by a free-text search term.
type Filter struct {
	ShowActive   bool
	ShowInactive bool
	// Search matches case-insensitively against name and email.
	Search string
}

// DefaultFilter shows both statuses with no search term.
func DefaultFilter() Filter {
	return Filter{ShowActive: true, ShowInactive: true}
}

// Match reports whether a profile passes the filter.
func (f Filter) Match(p *models.Profile) bool {
	if p.Active() {
		if !f.ShowActive {
			return false
		}
	} else if !f.ShowInactive {
		return false
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}

	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Email), term)
}

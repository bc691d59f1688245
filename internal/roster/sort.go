package roster

import (
	"sort"
	"strings"

	"github.com/irislab/irismapper-admin/internal/db/models"
)

// Sortable roster fields. The values double as the persisted representation.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldCreated = "createdAt"
	FieldStatus  = "status"
)

// Sort directions.
const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// SortPref is the persisted sort preference of the roster.
type SortPref struct {
	Field     string
	Direction string
}

// DefaultSort is name ascending.
func DefaultSort() SortPref {
	return SortPref{Field: FieldName, Direction: DirectionAsc}
}

// Click applies a header click: clicking the current field flips the
// direction, clicking another field selects it ascending.
func (s SortPref) Click(field string) SortPref {
	if field == s.Field {
		if s.Direction == DirectionAsc {
			s.Direction = DirectionDesc
		} else {
			s.Direction = DirectionAsc
		}

		return s
	}

	return SortPref{Field: field, Direction: DirectionAsc}
}

// Valid reports whether the preference names a known field and direction.
// Stale persisted values fail this check and fall back to the default.
func (s SortPref) Valid() bool {
	switch s.Field {
	case FieldName, FieldEmail, FieldCreated, FieldStatus:
	default:
		return false
	}

	return s.Direction == DirectionAsc || s.Direction == DirectionDesc
}

// Arrange returns a new slice holding the profiles that pass the filter,
// admin accounts excluded, ordered by the sort preference. The input slice
// is never modified. Ties keep their input order.
func Arrange(list []*models.Profile, filter Filter, pref SortPref) []*models.Profile {
	if !pref.Valid() {
		pref = DefaultSort()
	}

	out := make([]*models.Profile, 0, len(list))

	for _, p := range list {
		if p.IsAdmin {
			continue
		}

		if filter.Match(p) {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		less := lessByField(out[i], out[j], pref.Field)
		if pref.Direction == DirectionDesc {
			return lessByField(out[j], out[i], pref.Field)
		}

		return less
	})

	return out
}

func lessByField(a, b *models.Profile, field string) bool {
	switch field {
	case FieldEmail:
		return strings.ToLower(a.Email) < strings.ToLower(b.Email)
	case FieldCreated:
		return createdMilli(a) < createdMilli(b)
	case FieldStatus:
		return string(a.Status) < string(b.Status)
	default:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}

// createdMilli orders missing creation timestamps before all real ones.
func createdMilli(p *models.Profile) int64 {
	if p.CreatedAt.IsZero() {
		return 0
	}

	return p.CreatedAt.UnixMilli()
}

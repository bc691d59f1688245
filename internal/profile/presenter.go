package profile

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/irislab/irismapper-admin/internal/identity"
)

// timestampMissing is shown for fields without a stored timestamp.
const timestampMissing = "Not available"

// timestampLayout formats stored timestamps for display.
const timestampLayout = "Jan 2, 2006 3:04 PM"

// View is the rendered profile page data.
type View struct {
	// Found is false when the visitor has no profile document. The page
	// still renders with the session email and working navigation.
	Found      bool
	Name       string
	Email      string
	Created    string
	Modified   string
	ModifiedBy string
	Status     string
	IsAdmin    bool
	// AppPath is the back-to-app navigation target.
	AppPath string
}

// Presenter builds the profile page view for a signed-in visitor.
type Presenter struct {
	store  Store
	prefix string
}

// NewPresenter creates a presenter for the given mount prefix.
func NewPresenter(store Store, prefix string) *Presenter {
	return &Presenter{store: store, prefix: prefix}
}

// Present resolves the visitor's profile document into a view. A missing
// document degrades to a view carrying only the session email; a backend
// failure does the same after logging, the page never hard-fails.
func (p *Presenter) Present(ctx context.Context, session *identity.Session) View {
	view := View{
		Email:   session.Email,
		AppPath: p.prefix + "index",
	}

	doc, err := p.store.Get(ctx, session.UID)
	if err != nil {
		if err != ErrNotFound {
			log.Error().Err(err).Str("uid", session.UID).Msg("profile lookup failed")
		}

		return view
	}

	view.Found = true
	view.Name = doc.DisplayName()
	view.Email = doc.Email
	view.Created = formatTimestamp(doc.CreatedAt)
	view.Modified = formatTimestamp(doc.LastModified)
	view.ModifiedBy = doc.ModifiedBy
	view.Status = string(doc.Status)
	view.IsAdmin = doc.IsAdmin

	return view
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return timestampMissing
	}

	return t.Local().Format(timestampLayout)
}

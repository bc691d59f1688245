package roster

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/irislab/irismapper-admin/internal/db/models"
	"github.com/irislab/irismapper-admin/internal/debounce"
	"github.com/irislab/irismapper-admin/internal/profile"
)

// searchDelay is the quiet period before a search term takes effect.
const searchDelay = 300 * time.Millisecond

// View receives the roster rendering states.
type View interface {
	Loading()
	Rows(list []*models.Profile)
	Empty()
	Error(err error)
}

// Confirmer asks for confirmation before a status change. It returns true
// when the change is confirmed; a dismissed prompt counts as declined.
type Confirmer interface {
	Confirm(name, next string) bool
}

// Controller drives the roster view: it loads profiles, applies filter and
// sort, and runs the status-toggle flow.
type Controller struct {
	store   profile.Store
	prefs   PrefStore
	view    View
	confirm Confirmer
	// actor is recorded as the modifier on status changes.
	actor string

	mu     sync.Mutex
	filter Filter
	search *debounce.Trailing
}

// NewController wires a roster controller. The search debouncer is armed
// lazily on the first SetSearch call.
func NewController(store profile.Store, prefs PrefStore, view View, confirm Confirmer, actor string) *Controller {
	return &Controller{
		store:   store,
		prefs:   prefs,
		view:    view,
		confirm: confirm,
		actor:   actor,
		filter:  DefaultFilter(),
	}
}

// SetStatusFilter updates the status checkboxes and reloads.
func (c *Controller) SetStatusFilter(ctx context.Context, showActive, showInactive bool) {
	c.mu.Lock()
	c.filter.ShowActive = showActive
	c.filter.ShowInactive = showInactive
	c.mu.Unlock()

	c.Load(ctx)
}

// SetStatus replaces the status checkboxes without reloading. The search
// flow carries the full filter state with every keystroke; the debounced
// reload picks the checkboxes up together with the term.
func (c *Controller) SetStatus(showActive, showInactive bool) {
	c.mu.Lock()
	c.filter.ShowActive = showActive
	c.filter.ShowInactive = showInactive
	c.mu.Unlock()
}

// SetSearch updates the search term. The reload is debounced so a typing
// burst causes a single reload after the quiet period.
func (c *Controller) SetSearch(ctx context.Context, term string) {
	c.mu.Lock()
	c.filter.Search = term

	if c.search == nil {
		c.search = debounce.NewTrailing(searchDelay, func() {
			c.Load(ctx)
		})
	}

	c.search.Trigger()
	c.mu.Unlock()
}

// SortClick applies a header click to the persisted preference and reloads.
func (c *Controller) SortClick(ctx context.Context, field string) {
	pref, ok := c.prefs.Load()
	if !ok || !pref.Valid() {
		pref = DefaultSort()
	}

	c.prefs.Save(pref.Click(field))
	c.Load(ctx)
}

// Load fetches all profiles and renders them through the view.
func (c *Controller) Load(ctx context.Context) {
	c.view.Loading()

	list, err := c.store.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("roster load failed")
		c.view.Error(err)

		return
	}

	c.mu.Lock()
	filter := c.filter
	c.mu.Unlock()

	pref, ok := c.prefs.Load()
	if !ok {
		pref = DefaultSort()
	}

	rows := Arrange(list, filter, pref)
	if len(rows) == 0 {
		c.view.Empty()

		return
	}

	c.view.Rows(rows)
}

// ToggleStatus runs the status-toggle flow for one user: confirm, write the
// flipped status, then reload. The roster reloads whether or not the change
// was confirmed or the write succeeded, so the view always shows the stored
// state.
func (c *Controller) ToggleStatus(ctx context.Context, uid string) {
	defer c.Load(ctx)

	p, err := c.store.Get(ctx, uid)
	if err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("status toggle lookup failed")

		return
	}

	next := p.Status.Flip()
	if !c.confirm.Confirm(p.DisplayName(), string(next)) {
		return
	}

	if err := c.store.UpdateStatus(ctx, uid, next, c.actor); err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("status toggle write failed")
	}
}

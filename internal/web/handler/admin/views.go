package admin

import (
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/irislab/irismapper-admin/internal/db/models"
	"github.com/irislab/irismapper-admin/internal/roster"
	"github.com/irislab/irismapper-admin/internal/web/handler"
)

// Roster view states as rendered by the rows partial.
const (
	stateLoading = "loading"
	stateRows    = "rows"
	stateEmpty   = "empty"
	stateError   = "error"
)

// snapshotView implements roster.View by remembering the last rendered
// state, so a later request can fetch the rows the live controller produced.
type snapshotView struct {
	mu    sync.Mutex
	state string
	rows  []*models.Profile
	err   error
}

func (v *snapshotView) Loading() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state = stateLoading
}

func (v *snapshotView) Rows(list []*models.Profile) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state = stateRows
	v.rows = list
	v.err = nil
}

func (v *snapshotView) Empty() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state = stateEmpty
	v.rows = nil
	v.err = nil
}

func (v *snapshotView) Error(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state = stateError
	v.err = err
}

// Snapshot returns the last rendered state.
func (v *snapshotView) Snapshot() (state string, rows []*models.Profile, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.state, v.rows, v.err
}

// discardView implements roster.View for flows whose output is a redirect;
// the follow-up page load renders the fresh state.
type discardView struct{}

func (discardView) Loading()               {}
func (discardView) Rows([]*models.Profile) {}
func (discardView) Empty()                 {}
func (discardView) Error(error)            {}

// formConfirmer implements roster.Confirmer with the answer the admin
// already gave on the confirmation page.
type formConfirmer struct {
	confirmed bool
}

func (f formConfirmer) Confirm(_, _ string) bool {
	return f.confirmed
}

// declineConfirmer always declines; it backs flows that never toggle.
type declineConfirmer struct{}

func (declineConfirmer) Confirm(_, _ string) bool {
	return false
}

// cookiePrefs implements roster.PrefStore over the sort preference cookies,
// persisting the preference across page loads per browser.
type cookiePrefs struct {
	c *fiber.Ctx
}

// prefCookieMaxAge keeps the sort preference for a year.
const prefCookieMaxAge = 365 * 24 * 60 * 60

func (p cookiePrefs) Load() (roster.SortPref, bool) {
	pref := roster.SortPref{
		Field:     p.c.Cookies(handler.SortFieldCookie),
		Direction: p.c.Cookies(handler.SortDirectionCookie),
	}

	return pref, pref.Valid()
}

func (p cookiePrefs) Save(pref roster.SortPref) {
	p.c.Cookie(&fiber.Cookie{
		Name:     handler.SortFieldCookie,
		Value:    pref.Field,
		MaxAge:   prefCookieMaxAge,
		SameSite: "Lax",
	})
	p.c.Cookie(&fiber.Cookie{
		Name:     handler.SortDirectionCookie,
		Value:    pref.Direction,
		MaxAge:   prefCookieMaxAge,
		SameSite: "Lax",
	})
}

package guard

import (
	"context"
	"sync"

	"github.com/irislab/irismapper-admin/internal/identity"
)

// Locator abstracts the current location of a watched page instance.
type Locator interface {
	// Path returns the current path.
	Path() string
	// Navigate moves the page to the given target.
	Navigate(target string)
}

// Watch subscribes the guard to session-change notifications and re-evaluates
// the locator's current path on every notification, navigating when the
// decision is a redirect. It subscribes exactly once and returns the
// unsubscribe handle.
//
// Evaluations are sequenced: only one runs per notification. A notification
// may still arrive while a previous evaluation's profile fetch is in flight;
// that late response is tolerated, not cancelled.
func (g *Guard) Watch(gateway identity.Gateway, loc Locator) func() {
	var mu sync.Mutex

	return gateway.Subscribe(func(session *identity.Session) {
		mu.Lock()
		defer mu.Unlock()

		decision := g.Evaluate(context.Background(), loc.Path(), session)
		if decision.Action == ActionRedirect {
			loc.Navigate(decision.Target)
		}
	})
}

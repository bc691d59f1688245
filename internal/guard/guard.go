// Package guard decides, per page visit, whether a visitor may see the page,
// and where to send them otherwise. All decisions flow from the page
// classification and the presence of a session; the admin panel additionally
// requires the admin flag on the visitor's profile document.
package guard

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/irislab/irismapper-admin/internal/identity"
	"github.com/irislab/irismapper-admin/internal/profile"
)

// Action is the kind of decision the guard takes for a visit.
type Action int

const (
	// ActionAllow lets the visit proceed.
	ActionAllow Action = iota
	// ActionRedirect sends the visitor to Decision.Target.
	ActionRedirect
)

// Decision is the outcome of evaluating one page visit.
type Decision struct {
	Action Action
	// Target is the redirect target when Action is ActionRedirect.
	Target string
	// ShowControls is set when the main application should carry the
	// signed-in user controls.
	ShowControls bool
	// ShowProfile is set when the profile presenter should run for the visit.
	ShowProfile bool
}

// Injector receives the user-controls injection request for main app pages.
// Implementations must be idempotent.
type Injector interface {
	InjectUserControls()
}

// Guard applies the page access rules.
type Guard struct {
	profiles profile.Store
	prefix   string
	injector Injector
}

// New creates a guard for the given mount prefix. The injector may be nil.
func New(profiles profile.Store, prefix string, injector Injector) *Guard {
	return &Guard{
		profiles: profiles,
		prefix:   prefix,
		injector: injector,
	}
}

// LoginTarget returns the redirect target for unauthenticated visits.
func (g *Guard) LoginTarget() string {
	return g.prefix + "login"
}

// IndexTarget returns the redirect target for the main application.
func (g *Guard) IndexTarget() string {
	return g.prefix + "index"
}

// Evaluate applies the access rules for a single page visit.
// The session is nil when no visitor is signed in.
func (g *Guard) Evaluate(ctx context.Context, path string, session *identity.Session) Decision {
	page := Classify(g.relative(path))

	if session == nil {
		switch page {
		case PageAdminPanel, PageProfile, PageMainApp:
			return Decision{Action: ActionRedirect, Target: g.LoginTarget()}
		default:
			return Decision{Action: ActionAllow}
		}
	}

	switch page {
	case PageLogin:
		return Decision{Action: ActionRedirect, Target: g.IndexTarget()}

	case PageMainApp:
		if g.injector != nil {
			g.injector.InjectUserControls()
		}

		return Decision{Action: ActionAllow, ShowControls: true}

	case PageAdminPanel:
		if !g.isAdmin(ctx, session.UID) {
			return Decision{Action: ActionRedirect, Target: g.LoginTarget()}
		}

		return Decision{Action: ActionAllow}

	case PageProfile:
		return Decision{Action: ActionAllow, ShowProfile: true}

	default:
		return Decision{Action: ActionAllow}
	}
}

// relative strips the mount prefix so a folder mount root classifies the
// same way as the web root.
func (g *Guard) relative(path string) string {
	if g.prefix != "/" && strings.HasPrefix(path, g.prefix) {
		return "/" + strings.TrimPrefix(path, g.prefix)
	}

	return path
}

// isAdmin resolves the admin flag from the profile store.
// A missing profile or a failed lookup both deny: the guard never grants
// admin access on a backend error.
func (g *Guard) isAdmin(ctx context.Context, uid string) bool {
	p, err := g.profiles.Get(ctx, uid)
	if err != nil {
		if err != profile.ErrNotFound {
			log.Error().Err(err).Str("uid", uid).Msg("admin lookup failed, denying access")
		}

		return false
	}

	return p.IsAdmin
}

// Controls is the default Injector. It owns an explicit idempotency flag so
// repeated evaluations of a main app page inject the user controls once.
type Controls struct {
	mu       sync.Mutex
	injected bool
}

// InjectUserControls marks the controls as present. No-op if already injected.
func (c *Controls) InjectUserControls() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.injected = true
}

// Injected reports whether the user controls were injected.
func (c *Controls) Injected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.injected
}

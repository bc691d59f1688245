package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/irislab/irismapper-admin/internal/guard"
	"github.com/irislab/irismapper-admin/internal/identity"
	"github.com/irislab/irismapper-admin/internal/mount"
	"github.com/irislab/irismapper-admin/internal/web/handler"
	"github.com/irislab/irismapper-admin/internal/web/session"
)

// GuardMiddleware is a Fiber middleware applying the page access rules to
// every visit. It resolves the session from the cookie, evaluates the guard
// against the mount prefix of the request path, and either redirects or
// stores the session and the user-controls flag in fiber.Locals.
func (s *Service) GuardMiddleware(c *fiber.Ctx) error {
	path := strings.ToLower(c.Path())
	if strings.HasPrefix(path, "/static") ||
		strings.HasPrefix(path, "/metrics") ||
		strings.HasPrefix(path, "/healthz") {
		return c.Next()
	}

	sess := resolveSession(c)

	prefix := mount.Prefix(c.Path(), s.cfg.Mount.FoldersOrDefault())
	g := guard.New(s.profiles, prefix, nil)

	decision := g.Evaluate(c.Context(), c.Path(), sess)
	if decision.Action == guard.ActionRedirect {
		return c.Redirect(decision.Target)
	}

	c.Locals(handler.LocalSession, sess)
	c.Locals(handler.LocalShowControls, decision.ShowControls)

	return c.Next()
}

// resolveSession loads the session behind the request's session cookie,
// returning nil for missing cookies and stale or unreadable session data.
func resolveSession(c *fiber.Ctx) *identity.Session {
	cookie := c.Cookies(handler.SessionCookie)
	if cookie == "" {
		return nil
	}

	sessData := new(session.Data)
	if err := sessData.Read(cookie); err != nil {
		return nil
	}

	if sessData.Session.UID == "" {
		return nil
	}

	return &sessData.Session
}

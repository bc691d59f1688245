// Package logout clears the visitor's session and sends them to the login page.
package logout

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/irislab/irismapper-admin/internal/config"
	"github.com/irislab/irismapper-admin/internal/mount"
	"github.com/irislab/irismapper-admin/internal/web/handler"
	"github.com/irislab/irismapper-admin/internal/web/handler/login"
	"github.com/irislab/irismapper-admin/internal/web/session"
)

// Path is the path suffix of the logout route under each mount prefix.
const Path = "logout"

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	deps *handler.Deps
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.deps = deps

	for _, prefix := range handler.Prefixes(deps.Folders) {
		app.Get(prefix+Path, s.Logout)
		app.Post(prefix+Path, s.Logout)
	}

	return nil
}

// Logout handles user logout by clearing the session.
func (s *Service) Logout(c *fiber.Ctx) error {
	sessionID := c.Cookies(handler.SessionCookie)
	if sessionID != "" {
		sessData := new(session.Data)
		if err := sessData.Read(sessionID); err == nil && sessData.Session.UID != "" {
			if err := s.deps.Gateway.SignOut(c.Context(), sessData.Session.UID); err != nil {
				log.Error().Err(err).Msg("gateway sign-out failed")
			}
		}

		if err := session.Store.Storage.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}
	}

	// Clear the session cookie
	c.Cookie(&fiber.Cookie{
		Name:     handler.SessionCookie,
		Value:    "",
		MaxAge:   -1,
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect(mount.Prefix(c.Path(), s.deps.Folders) + login.Path)
}

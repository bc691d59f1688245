// Package profile renders the signed-in user's profile page.
package profile

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/irislab/irismapper-admin/internal/config"
	"github.com/irislab/irismapper-admin/internal/mount"
	profilepkg "github.com/irislab/irismapper-admin/internal/profile"
	"github.com/irislab/irismapper-admin/internal/web/handler"
)

const (
	// Path is the path suffix of the profile page.
	Path = "profile"

	// TemplateName is the profile page template.
	TemplateName = "profile"
)

// Service is the profile page handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	deps *handler.Deps
}

// Handler is the profile page handler.
var Handler = Service{}

// Init initializes the profile page handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.deps = deps

	for _, prefix := range handler.Prefixes(deps.Folders) {
		app.Get(prefix+Path, s.Get)
	}

	return nil
}

// Get renders the profile page for the signed-in visitor.
func (s *Service) Get(c *fiber.Ctx) error {
	sess := handler.CurrentSession(c)
	if sess == nil {
		// the guard redirects before this point, belt and braces
		return c.Redirect(mount.Prefix(c.Path(), s.deps.Folders) + "login")
	}

	prefix := mount.Prefix(c.Path(), s.deps.Folders)
	presenter := profilepkg.NewPresenter(s.deps.Profiles, prefix)
	view := presenter.Present(c.Context(), sess)

	return c.Render(TemplateName, fiber.Map{
		"title":   s.cfg.Title,
		"prefix":  prefix,
		"profile": view,
	}, handler.BaseLayout)
}

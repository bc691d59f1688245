// Package index serves the main application page. The page itself is the
// mapping tool shell; this handler's job is carrying the signed-in user
// controls the guard injected for the visit.
package index

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/irislab/irismapper-admin/internal/config"
	"github.com/irislab/irismapper-admin/internal/mount"
	"github.com/irislab/irismapper-admin/internal/web/handler"
)

const (
	// Path is the path suffix of the main application page.
	Path = "index"

	// TemplateName is the main application template.
	TemplateName = "index"
)

// Service is the main application handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	deps *handler.Deps
}

// Handler is the main application handler.
var Handler = Service{}

// Init initializes the main application handler. The bare mount root serves
// the same page as the index path.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.deps = deps

	for _, prefix := range handler.Prefixes(deps.Folders) {
		app.Get(prefix, s.Get)
		app.Get(prefix+Path, s.Get)
	}

	return nil
}

// Get renders the main application page.
func (s *Service) Get(c *fiber.Ctx) error {
	sess := handler.CurrentSession(c)
	showControls, _ := c.Locals(handler.LocalShowControls).(bool)

	data := fiber.Map{
		"title":        s.cfg.Title,
		"prefix":       mount.Prefix(c.Path(), s.deps.Folders),
		"showControls": showControls,
	}

	if sess != nil {
		data["email"] = sess.Email
	}

	return c.Render(TemplateName, data, handler.BaseLayout)
}

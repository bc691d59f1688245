// Package admin serves the admin panel: the user roster with filtering,
// sorting and live search, account creation, and the status-toggle flow
// with its confirmation step.
package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/irislab/irismapper-admin/internal/config"
	"github.com/irislab/irismapper-admin/internal/mount"
	"github.com/irislab/irismapper-admin/internal/provision"
	"github.com/irislab/irismapper-admin/internal/roster"
	"github.com/irislab/irismapper-admin/internal/web/handler"
)

const (
	// Path is the path suffix of the admin panel under each mount prefix.
	Path = "admin-panel"

	// TemplatePanel is the roster page template.
	TemplatePanel = "admin/panel"
	// TemplateRows is the roster rows partial for live search.
	TemplateRows = "admin/rows"
	// TemplateConfirm is the status-toggle confirmation page.
	TemplateConfirm = "admin/confirm"
)

// Service is the admin panel handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	deps *handler.Deps

	provisioner *provision.Provisioner

	// live drives the debounced live-search flow shared across requests.
	// livePrefs mirrors the sort preference cookies of the searching
	// request, so the debounced reload sorts like the page it refreshes.
	live      *roster.Controller
	liveView  *snapshotView
	livePrefs *roster.MemoryPrefs
}

// Handler is the admin panel handler.
var Handler = Service{}

// Init initializes the admin panel handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.deps = deps
	s.provisioner = provision.New(deps.Gateway, deps.Profiles)

	s.liveView = &snapshotView{}
	s.livePrefs = &roster.MemoryPrefs{}
	s.live = roster.NewController(
		deps.Profiles,
		s.livePrefs,
		s.liveView,
		declineConfirmer{},
		"admin-panel",
	)

	for _, prefix := range handler.Prefixes(deps.Folders) {
		app.Get(prefix+Path, s.List)
		app.Get(prefix+Path+"/sort/:field", s.Sort)
		app.Post(prefix+Path+"/users", s.Create)
		app.Get(prefix+Path+"/users/:uid/toggle", s.ConfirmToggle)
		app.Post(prefix+Path+"/users/:uid/toggle", s.Toggle)
		app.Post(prefix+Path+"/users/search", s.Search)
		app.Get(prefix+Path+"/users/rows", s.Rows)
	}

	return nil
}

func (s *Service) prefix(c *fiber.Ctx) string {
	return mount.Prefix(c.Path(), s.deps.Folders)
}

func (s *Service) panelPath(c *fiber.Ctx) string {
	return s.prefix(c) + Path
}

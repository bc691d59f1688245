package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/irislab/irismapper-admin/internal/roster"
	"github.com/irislab/irismapper-admin/internal/web/handler"
)

// List renders the user roster with the current filter and the persisted
// sort preference.
func (s *Service) List(c *fiber.Ctx) error {
	return s.renderPanel(c, c.Query("notice"), c.Query("error"))
}

func (s *Service) renderPanel(c *fiber.Ctx, notice, errMsg string) error {
	filter := readFilter(c)

	pref, ok := cookiePrefs{c}.Load()
	if !ok {
		pref = roster.DefaultSort()
	}

	data := fiber.Map{
		"title":  s.cfg.Title,
		"prefix": s.prefix(c),
		"panel":  s.panelPath(c),
		"filter": filter,
		"sort":   pref,
		"state":  stateRows,
		"notice": notice,
		"error":  errMsg,
	}

	list, err := s.deps.Profiles.All(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("roster load failed")

		data["state"] = stateError
		data["error"] = "Failed to load users"

		return c.Render(TemplatePanel, data, handler.BaseLayout)
	}

	rows := roster.Arrange(list, filter, pref)
	if len(rows) == 0 {
		data["state"] = stateEmpty
	}

	data["rows"] = rows

	return c.Render(TemplatePanel, data, handler.BaseLayout)
}

// Sort applies a column header click to the persisted preference and sends
// the admin back to the panel, keeping the active filter.
func (s *Service) Sort(c *fiber.Ctx) error {
	prefs := cookiePrefs{c}

	pref, ok := prefs.Load()
	if !ok {
		pref = roster.DefaultSort()
	}

	prefs.Save(pref.Click(c.Params("field")))

	target := s.panelPath(c)
	if query := string(c.Request().URI().QueryString()); query != "" {
		target += "?" + query
	}

	return c.Redirect(target)
}

// readFilter parses the filter form. The checkboxes only arrive when the
// filter form was submitted, marked by the "filter" query flag; a plain
// panel load shows both statuses.
func readFilter(c *fiber.Ctx) roster.Filter {
	filter := roster.DefaultFilter()
	filter.Search = c.Query("search")

	if c.Query("filter") != "" {
		filter.ShowActive = c.Query("show-active") != ""
		filter.ShowInactive = c.Query("show-inactive") != ""
	}

	return filter
}

// readFormFilter parses the same filter state from a posted form, as the
// live-search flow sends it.
func readFormFilter(c *fiber.Ctx) roster.Filter {
	filter := roster.DefaultFilter()
	filter.Search = c.FormValue("search")

	if c.FormValue("filter") != "" {
		filter.ShowActive = c.FormValue("show-active") != ""
		filter.ShowInactive = c.FormValue("show-inactive") != ""
	}

	return filter
}

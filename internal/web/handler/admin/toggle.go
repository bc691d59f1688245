package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/irislab/irismapper-admin/internal/roster"
	"github.com/irislab/irismapper-admin/internal/web/handler"
)

// ConfirmToggle renders the confirmation page naming the user and the
// status the toggle would write.
func (s *Service) ConfirmToggle(c *fiber.Ctx) error {
	uid := c.Params("uid")

	prof, err := s.deps.Profiles.Get(c.Context(), uid)
	if err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("status toggle lookup failed")

		return c.Redirect(s.panelPath(c))
	}

	return c.Render(TemplateConfirm, fiber.Map{
		"title":  s.cfg.Title,
		"panel":  s.panelPath(c),
		"uid":    uid,
		"name":   prof.DisplayName(),
		"status": string(prof.Status.Flip()),
	}, handler.BaseLayout)
}

// Toggle applies the admin's answer from the confirmation page. The panel
// is reloaded whether the change was confirmed or not, so the roster always
// reflects the stored state.
func (s *Service) Toggle(c *fiber.Ctx) error {
	actor := "admin"
	if sess := handler.CurrentSession(c); sess != nil {
		actor = sess.Email
	}

	ctrl := roster.NewController(
		s.deps.Profiles,
		cookiePrefs{c},
		discardView{},
		formConfirmer{confirmed: c.FormValue("decision") == "yes"},
		actor,
	)

	ctrl.ToggleStatus(c.Context(), c.Params("uid"))

	return c.Redirect(s.panelPath(c))
}

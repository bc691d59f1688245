package admin

import (
	"context"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/irislab/irismapper-admin/internal/identity"
	"github.com/irislab/irismapper-admin/internal/provision"
	"github.com/irislab/irismapper-admin/internal/web/handler"
)

// createForm is the new-user form.
type createForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Generate string `form:"generate"`
}

// Create provisions a new user account from the panel form.
func (s *Service) Create(c *fiber.Ctx) error {
	form := new(createForm)
	if err := c.BodyParser(form); err != nil {
		return s.redirectWithError(c, "Invalid form data")
	}

	password := form.Password
	if form.Generate != "" {
		password = provision.RandomPassword()
	}

	actor := "admin"
	if sess := handler.CurrentSession(c); sess != nil {
		actor = sess.Email
	}

	in := provision.Input{
		Name:     form.Name,
		Email:    form.Email,
		Password: password,
	}

	_, err := s.provisioner.Create(c.Context(), in, actor)
	if err != nil {
		var vErr *provision.ValidationError
		if errors.As(err, &vErr) {
			return s.redirectWithError(c, vErr.Message)
		}

		if errors.Is(err, identity.ErrEmailAlreadyInUse) {
			return s.redirectWithError(c, "Email already in use")
		}

		log.Error().Err(err).Str("email", form.Email).Msg("user creation failed")

		return s.redirectWithError(c, "Failed to create user")
	}

	// the generated password is shown once in the page body; a redirect
	// query would leave it in browser history and access logs
	if form.Generate != "" {
		return s.renderPanel(c, "User created with password "+password, "")
	}

	return c.Redirect(s.panelPath(c) + "?notice=" + url.QueryEscape("User created"))
}

// Search feeds the live-search controller. Each keystroke carries the
// checkbox state and the sort cookies along with the term, so the debounced
// reload renders the same filter and order as the page it refreshes. The
// rows endpoint serves the result after the quiet period.
func (s *Service) Search(c *fiber.Ctx) error {
	if pref, ok := (cookiePrefs{c}).Load(); ok {
		s.livePrefs.Save(pref)
	}

	filter := readFormFilter(c)
	s.live.SetStatus(filter.ShowActive, filter.ShowInactive)
	s.live.SetSearch(context.Background(), filter.Search)

	return c.SendStatus(fiber.StatusNoContent)
}

// Rows renders the live-search snapshot as the roster rows partial.
func (s *Service) Rows(c *fiber.Ctx) error {
	state, rows, err := s.liveView.Snapshot()
	if state == "" {
		state = stateLoading
	}

	data := fiber.Map{
		"panel": s.panelPath(c),
		"state": state,
		"rows":  rows,
	}

	if err != nil {
		data["error"] = "Failed to load users"
	}

	return c.Render(TemplateRows, data)
}

func (s *Service) redirectWithError(c *fiber.Ctx, msg string) error {
	return c.Redirect(s.panelPath(c) + "?error=" + url.QueryEscape(msg))
}

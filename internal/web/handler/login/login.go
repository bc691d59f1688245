// Package login renders the login page and runs the sign-in flow, for both
// the user form and the admin form on the same page.
package login

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/irislab/irismapper-admin/internal/config"
	"github.com/irislab/irismapper-admin/internal/db/models"
	"github.com/irislab/irismapper-admin/internal/identity"
	"github.com/irislab/irismapper-admin/internal/mount"
	"github.com/irislab/irismapper-admin/internal/profile"
	"github.com/irislab/irismapper-admin/internal/web/handler"
	"github.com/irislab/irismapper-admin/internal/web/session"
)

const (
	// Path is the path suffix of the login page under each mount prefix.
	Path = "login"

	// TemplateName is the login page template.
	TemplateName = "login"

	// TargetAdmin marks a submission of the admin form.
	TargetAdmin = "admin"
)

// User-facing sign-in errors.
const (
	msgInvalidCredentials      = "Invalid email or password"
	msgInvalidAdminCredentials = "Invalid admin credentials"
	msgAccountInactive         = "Your account is inactive. Please contact support."
	msgNotAdmin                = "You do not have admin privileges"
	msgInternalError           = "Internal server error"
)

// loginForm is the submitted login form.
type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Target   string `form:"target"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg  *config.Config
	deps *handler.Deps
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.deps = deps

	for _, prefix := range handler.Prefixes(deps.Folders) {
		app.Get(prefix+Path, s.Get)
		app.Post(prefix+Path, s.Post)
	}

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{
		"title":  s.cfg.Title,
		"prefix": s.prefix(c),
	}, handler.BaseLayout)
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(loginForm)
	if err := c.BodyParser(form); err != nil {
		return s.renderError(c, form, msgInvalidCredentials)
	}

	sess, err := s.deps.Gateway.SignIn(c.Context(), form.Email, form.Password)
	if err != nil {
		if form.Target == TargetAdmin {
			return s.renderError(c, form, msgInvalidAdminCredentials)
		}

		return s.renderError(c, form, msgInvalidCredentials)
	}

	prof := s.resolveProfile(c, sess)

	// Inactive accounts may not sign in. The status is only checked here,
	// an account deactivated mid-session keeps its session.
	if prof != nil && !prof.Active() {
		s.signOut(c, sess)
		return s.renderError(c, form, msgAccountInactive)
	}

	if form.Target == TargetAdmin && (prof == nil || !prof.IsAdmin) {
		s.signOut(c, sess)
		return s.renderError(c, form, msgNotAdmin)
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.renderError(c, form, msgInternalError)
	}

	userSession := &session.Data{Session: *sess}
	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.renderError(c, form, msgInternalError)
	}

	cookieSettings := &fiber.Cookie{
		Name:     handler.SessionCookie,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	if form.Target == TargetAdmin {
		return c.Redirect(s.prefix(c) + "admin-panel")
	}

	return c.Redirect(s.prefix(c) + "index")
}

// resolveProfile fetches the signed-in user's profile document, creating a
// minimal one when it is missing. Accounts provisioned before the profile
// collection existed get their document backfilled here; the backfill
// failing never blocks the sign-in.
func (s *Service) resolveProfile(c *fiber.Ctx, sess *identity.Session) *models.Profile {
	prof, err := s.deps.Profiles.Get(c.Context(), sess.UID)
	if err == nil {
		return prof
	}

	if err != profile.ErrNotFound {
		log.Error().Err(err).Str("uid", sess.UID).Msg("profile lookup failed during sign-in")
		return nil
	}

	now := time.Now().UTC()
	prof = &models.Profile{
		UID:          sess.UID,
		Name:         models.EmailLocalPart(sess.Email),
		Email:        sess.Email,
		Status:       models.StatusActive,
		CreatedAt:    now,
		LastModified: now,
		ModifiedBy:   "system",
	}

	if err := s.deps.Profiles.Set(c.Context(), prof); err != nil {
		log.Warn().Err(err).Str("uid", sess.UID).Msg("profile backfill failed")
	}

	return prof
}

func (s *Service) signOut(c *fiber.Ctx, sess *identity.Session) {
	if err := s.deps.Gateway.SignOut(c.Context(), sess.UID); err != nil {
		log.Error().Err(err).Str("uid", sess.UID).Msg("sign-out failed")
	}
}

func (s *Service) renderError(c *fiber.Ctx, form *loginForm, msg string) error {
	return c.Render(TemplateName, fiber.Map{
		"title":  s.cfg.Title,
		"prefix": s.prefix(c),
		"target": form.Target,
		"email":  form.Email,
		"error":  msg,
	}, handler.BaseLayout)
}

func (s *Service) prefix(c *fiber.Ctx) string {
	return mount.Prefix(c.Path(), s.deps.Folders)
}

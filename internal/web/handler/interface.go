package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/irislab/irismapper-admin/internal/config"
	"github.com/irislab/irismapper-admin/internal/identity"
	"github.com/irislab/irismapper-admin/internal/profile"
)

// Deps carries the shared collaborators the page handlers work against.
type Deps struct {
	Gateway  identity.Gateway
	Profiles profile.Store
	// Folders is the mount folder allow-list.
	Folders []string
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, deps *Deps) error
}

// Prefixes returns every route prefix the application is mounted under:
// the web root plus one prefix per allow-listed folder.
func Prefixes(folders []string) []string {
	out := make([]string, 0, len(folders)+1)
	out = append(out, RootPath)

	for _, folder := range folders {
		out = append(out, "/"+folder+"/")
	}

	return out
}

// CurrentSession returns the session resolved by the guard middleware,
// or nil when the visitor is not signed in.
func CurrentSession(c *fiber.Ctx) *identity.Session {
	sess, _ := c.Locals(LocalSession).(*identity.Session)
	return sess
}

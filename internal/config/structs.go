package config

import (
	"time"

	"github.com/irislab/irismapper-admin/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Mount     Mount
	Bootstrap Bootstrap
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}

// Mount holds the deployment mount settings. Folders is the allow-list of
// first path segments under which the application may be served; requests
// outside it resolve to the root prefix "/".
type Mount struct {
	Folders []string
}

// defaultMountFolders are the known deployment folder names of IrisMapper.
var defaultMountFolders = []string{"irismapper", "irismapper-main", "irismapperproplan"}

// FoldersOrDefault returns the configured folder allow-list, falling back to
// the known IrisMapper deployment folders when none are configured.
func (m Mount) FoldersOrDefault() []string {
	if len(m.Folders) == 0 {
		return defaultMountFolders
	}

	return m.Folders
}

// Bootstrap holds the initial admin account settings, used once at startup
// when no admin profile exists yet.
type Bootstrap struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

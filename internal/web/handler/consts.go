package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path of the route group.
	RootPath = "/"

	// SessionCookie is the name of the session cookie.
	SessionCookie = "session"

	// SortFieldCookie persists the roster sort field between page loads.
	SortFieldCookie = "usersSortField"

	// SortDirectionCookie persists the roster sort direction.
	SortDirectionCookie = "usersSortDirection"

	// LocalSession is the fiber.Locals key carrying the resolved session.
	LocalSession = "currentSession"

	// LocalShowControls is the fiber.Locals key for the user-controls flag.
	LocalShowControls = "showUserControls"

	// ErrNilACDFatalLogMsg is used if the app, cfg or deps pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or deps is nil"
)

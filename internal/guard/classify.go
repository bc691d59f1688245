package guard

import "strings"

// Page is the classification of a visited path.
type Page int

const (
	// PageOther is any page outside the known set; it is left unguarded.
	PageOther Page = iota
	// PageLogin is the login page.
	PageLogin
	// PageAdminPanel is the admin panel.
	PageAdminPanel
	// PageProfile is the profile page.
	PageProfile
	// PageMainApp is the main application.
	PageMainApp
)

// String returns the page name for logging.
func (p Page) String() string {
	switch p {
	case PageLogin:
		return "login"
	case PageAdminPanel:
		return "admin-panel"
	case PageProfile:
		return "profile"
	case PageMainApp:
		return "main-app"
	default:
		return "other"
	}
}

// Classify maps a path to its page classification by substring match,
// first match wins in the order login, admin-panel, profile, main-app.
// The bare mount root serves the main application.
func Classify(path string) Page {
	lower := strings.ToLower(path)

	switch {
	case strings.Contains(lower, "login"):
		return PageLogin
	case strings.Contains(lower, "admin-panel"):
		return PageAdminPanel
	case strings.Contains(lower, "profile"):
		return PageProfile
	case strings.Contains(lower, "index"):
		return PageMainApp
	case strings.Trim(lower, "/") == "":
		return PageMainApp
	default:
		return PageOther
	}
}

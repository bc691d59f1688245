package config

import "errors"

var (
	// ErrWebServerPortCanNotBeZero is returned if the webserver port is unset.
	ErrWebServerPortCanNotBeZero = errors.New("webserver port can not be 0")

	// ErrEmptyURL is returned if the webserver base URL is unset.
	ErrEmptyURL = errors.New("webserver url can not be empty")

	// ErrBootstrapAdminEmailEmpty is returned if no bootstrap admin email is configured.
	ErrBootstrapAdminEmailEmpty = errors.New("bootstrap admin email can not be empty")

	// ErrBootstrapAdminPasswordTooShort is returned if the bootstrap admin password
	// does not meet the minimum password length.
	ErrBootstrapAdminPasswordTooShort = errors.New("bootstrap admin password must be at least 8 characters")
)

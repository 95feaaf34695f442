package application

import "errors"

// Authentication failures are deliberately coarse: handlers map every one of
// these to the same generic client message so responses never reveal whether
// an email exists, a password was wrong, or an account is Google-only.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
)

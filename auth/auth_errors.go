package auth

import "errors"

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrNotAdmin           = errors.New("account has no admin role")
)

package profile

import "errors"

// Errors for profile resolution.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUnnamedSection  = errors.New("profile section has no name")
)

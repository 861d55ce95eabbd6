// Package usecase implements credit profile retrieval and synthesis.
package usecase

import "errors"

var (
	// ErrProfileNotFound is returned by repositories when a user has no profile yet.
	ErrProfileNotFound = errors.New("credit profile not found")
	// ErrProfileExists is returned by Create when the user already has a profile.
	ErrProfileExists = errors.New("credit profile already exists")
)

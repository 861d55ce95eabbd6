package usecase

import "errors"

var (
	// ErrDisputeNotFound is returned by repositories when no dispute has the id.
	ErrDisputeNotFound = errors.New("dispute not found")
)

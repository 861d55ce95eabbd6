package usecase

import "errors"

var (
	// ErrRateLimited is returned when the provider call budget of the window is spent.
	ErrRateLimited = errors.New("letter provider rate limit exceeded")
	// ErrEmptyCompletion is returned when the provider answered with no text.
	ErrEmptyCompletion = errors.New("letter provider returned empty text")
)

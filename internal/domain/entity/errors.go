package entity

import "errors"

// Standard domain errors
var (
	ErrEmptyQuestion     = errors.New("question must not be empty")
	ErrMissingAudio      = errors.New("audio file is required")
	ErrNotAudio          = errors.New("only audio files are allowed")
	ErrRateLimitExceeded = errors.New("rate limit exceeded: too many tokens used")
	ErrInternalServer    = errors.New("an internal error occurred")
)

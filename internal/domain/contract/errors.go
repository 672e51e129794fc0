package contract

import "errors"

var (
	// ErrInteractionNotFound is returned by point reads when no record exists for a video.
	ErrInteractionNotFound = errors.New("interaction not found")
	// ErrStoreUnavailable wraps failures of the primary record store.
	ErrStoreUnavailable = errors.New("interaction store unavailable")
	// ErrInvalidVideoID is returned when a video id fails validation.
	ErrInvalidVideoID = errors.New("invalid video id")
)

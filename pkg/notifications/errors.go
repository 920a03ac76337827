package notifications

import "errors"

var (
	// ErrDeviceUnregistered is returned when an apns token is unregistered.
	ErrDeviceUnregistered = errors.New("apns device unregistered")

	// ErrRetryRequired is returned when apns failed but the push may be retried.
	ErrRetryRequired = errors.New("retry required")
)

package stories

import "errors"

var (
	// ErrStoryNotFound is returned when no story exists for an ID.
	ErrStoryNotFound = errors.New("story not found")

	// ErrPermissionDenied is returned when a user mutates a story they do not own.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidStory is returned when a story fails creation validation.
	ErrInvalidStory = errors.New("invalid story")
)

package stories

import "time"

// IsActive reports whether a story has not yet passed its expiry.
func IsActive(story *Story, now time.Time) bool {
	return now.Unix() < story.ExpiresAt
}

// RemainingFraction returns how much of a story's lifetime is left, between 0 and 1.
// It is 0 exactly when the story is no longer active.
func RemainingFraction(story *Story, now time.Time) float64 {
	if !IsActive(story, now) {
		return 0
	}

	total := story.ExpiresAt - story.CreatedAt
	if total <= 0 {
		return 0
	}

	fraction := float64(story.ExpiresAt-now.Unix()) / float64(total)

	if fraction > 1 {
		return 1
	}

	if fraction < 0 {
		return 0
	}

	return fraction
}

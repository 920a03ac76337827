package stories

import "time"

// Lifetime is how long a story stays active after creation.
const Lifetime = 24 * time.Hour

// MediaType describes the visual representation of a story.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	MediaTypeText  MediaType = "text"
)

// Privacy controls who a story is visible to.
type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyFriends Privacy = "friends-only"
	PrivacyPrivate Privacy = "private"
)

// Author is captured on the story when it is created, it is not live-updated.
type Author struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
	Image       string `json:"image"`
}

// Reaction represents one user's emoji reaction to a story.
type Reaction struct {
	UserID    int    `json:"user_id"`
	Emoji     string `json:"emoji"`
	ReactedAt int64  `json:"reacted_at"`
}

// Story represents a single ephemeral content item.
type Story struct {
	ID            string     `json:"id"`
	Author        Author     `json:"author"`
	MediaType     MediaType  `json:"media_type"`
	MediaRef      string     `json:"media_ref,omitempty"`
	Background    string     `json:"background,omitempty"`
	Caption       string     `json:"caption,omitempty"`
	VideoDuration float64    `json:"video_duration,omitempty"`
	CreatedAt     int64      `json:"created_at"`
	ExpiresAt     int64      `json:"expires_at"`
	Privacy       Privacy    `json:"privacy"`
	Highlighted   bool       `json:"is_highlighted"`
	Viewers       []int      `json:"viewers"`
	Reactions     []Reaction `json:"reactions"`
}

package trackers

import (
	"fmt"
	"strconv"

	"github.com/dukex/mixpanel"

	"github.com/glimpsesocial/glimpse/pkg/pubsub"
	"github.com/glimpsesocial/glimpse/pkg/tracking"
)

type MixpanelTracker struct {
	client mixpanel.Mixpanel
}

func NewMixpanelTracker(client mixpanel.Mixpanel) *MixpanelTracker {
	return &MixpanelTracker{client: client}
}

func (m *MixpanelTracker) CanTrack(event *pubsub.Event) bool {
	return event.Type != pubsub.EventTypeStoryDeleted
}

func (m *MixpanelTracker) Track(event *pubsub.Event) error {
	log := transform(event)
	if log == nil {
		return fmt.Errorf("invalid type for tracker: %d", event.Type)
	}

	return m.client.Track(log.ID, log.Name, &mixpanel.Event{IP: "0", Properties: log.Properties})
}

func transform(event *pubsub.Event) *tracking.Event {
	switch event.Type {
	case pubsub.EventTypeNewStory:
		creator, err := event.GetInt("creator")
		if err != nil {
			return nil
		}

		mediaType, err := event.GetString("media_type")
		if err != nil {
			return nil
		}

		privacy, err := event.GetString("privacy")
		if err != nil {
			return nil
		}

		return &tracking.Event{
			ID:   strconv.Itoa(creator),
			Name: "story_new",
			Properties: map[string]interface{}{
				"media_type": mediaType,
				"privacy":    privacy,
			},
		}
	case pubsub.EventTypeStoryReaction:
		user, err := event.GetInt("user")
		if err != nil {
			return nil
		}

		emoji, err := event.GetString("emoji")
		if err != nil {
			return nil
		}

		return &tracking.Event{
			ID:   strconv.Itoa(user),
			Name: "story_reaction",
			Properties: map[string]interface{}{
				"emoji": emoji,
			},
		}
	case pubsub.EventTypeNewFollower:
		follower, err := event.GetInt("follower")
		if err != nil {
			return nil
		}

		return &tracking.Event{
			ID:         strconv.Itoa(follower),
			Name:       "new_follower",
			Properties: map[string]interface{}{},
		}
	default:
		return nil
	}
}

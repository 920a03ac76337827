package pubsub

import (
	"errors"

	"github.com/glimpsesocial/glimpse/pkg/stories"
)

type EventType int

const (
	EventTypeNewStory EventType = iota
	EventTypeStoryDeleted
	EventTypeStoryReaction
	EventTypeNewFollower
)

type Event struct {
	Type   EventType              `json:"type"`
	Params map[string]interface{} `json:"params"`
}

// GetInt returns an integer parameter from the event.
func (e Event) GetInt(field string) (int, error) {
	val, ok := e.Params[field]
	if !ok {
		return 0, errors.New("no field: " + field)
	}

	// json numbers decode as float64
	num, ok := val.(float64)
	if !ok {
		return 0, errors.New("failed to cast: " + field)
	}

	return int(num), nil
}

// GetString returns a string parameter from the event.
func (e Event) GetString(field string) (string, error) {
	val, ok := e.Params[field]
	if !ok {
		return "", errors.New("no field: " + field)
	}

	str, ok := val.(string)
	if !ok {
		return "", errors.New("failed to cast: " + field)
	}

	return str, nil
}

func NewStoryEvent(story *stories.Story) Event {
	return Event{
		Type: EventTypeNewStory,
		Params: map[string]interface{}{
			"id":         story.ID,
			"creator":    story.Author.ID,
			"media_type": string(story.MediaType),
			"privacy":    string(story.Privacy),
		},
	}
}

func NewStoryDeletedEvent(id string, creator int) Event {
	return Event{
		Type:   EventTypeStoryDeleted,
		Params: map[string]interface{}{"id": id, "creator": creator},
	}
}

func NewStoryReactionEvent(id string, user int, emoji string) Event {
	return Event{
		Type:   EventTypeStoryReaction,
		Params: map[string]interface{}{"id": id, "user": user, "emoji": emoji},
	}
}

func NewFollowerEvent(follower, id int) Event {
	return Event{
		Type:   EventTypeNewFollower,
		Params: map[string]interface{}{"follower": follower, "id": id},
	}
}

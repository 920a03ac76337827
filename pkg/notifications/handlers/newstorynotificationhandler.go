package handlers

import (
	"github.com/glimpsesocial/glimpse/pkg/followers"
	"github.com/glimpsesocial/glimpse/pkg/notifications"
	"github.com/glimpsesocial/glimpse/pkg/pubsub"
	"github.com/glimpsesocial/glimpse/pkg/stories"
	"github.com/glimpsesocial/glimpse/pkg/users"
)

type NewStoryNotificationHandler struct {
	followers *followers.FollowersBackend
	users     *users.Backend
}

func NewNewStoryNotificationHandler(f *followers.FollowersBackend, u *users.Backend) *NewStoryNotificationHandler {
	return &NewStoryNotificationHandler{
		followers: f,
		users:     u,
	}
}

func (h NewStoryNotificationHandler) Type() pubsub.EventType {
	return pubsub.EventTypeNewStory
}

func (h NewStoryNotificationHandler) Targets(event *pubsub.Event) ([]notifications.Target, error) {
	creator, err := event.GetInt("creator")
	if err != nil {
		return nil, err
	}

	privacy, err := event.GetString("privacy")
	if err != nil {
		return nil, err
	}

	targets := make([]notifications.Target, 0)

	switch stories.Privacy(privacy) {
	case stories.PrivacyPrivate:
		return targets, nil
	case stories.PrivacyFriends:
		friends, err := h.followers.GetFriends(creator)
		if err != nil {
			return nil, err
		}

		for _, friend := range friends {
			targets = append(targets, notifications.Target{ID: friend.ID})
		}
	default:
		ids, err := h.followers.GetAllFollowerIDsFor(creator)
		if err != nil {
			return nil, err
		}

		for _, id := range ids {
			targets = append(targets, notifications.Target{ID: id})
		}
	}

	return targets, nil
}

func (h NewStoryNotificationHandler) Build(event *pubsub.Event) (*notifications.PushNotification, error) {
	id, err := event.GetString("id")
	if err != nil {
		return nil, err
	}

	creator, err := event.GetInt("creator")
	if err != nil {
		return nil, err
	}

	user, err := h.users.GetUserByID(creator)
	if err != nil {
		return nil, err
	}

	return notifications.NewStoryNotification(id, creator, user.DisplayName), nil
}

package handlers

import (
	"github.com/glimpsesocial/glimpse/pkg/notifications"
	"github.com/glimpsesocial/glimpse/pkg/pubsub"
	"github.com/glimpsesocial/glimpse/pkg/users"
)

type FollowerNotificationHandler struct {
	users *users.Backend
}

func NewFollowerNotificationHandler(u *users.Backend) *FollowerNotificationHandler {
	return &FollowerNotificationHandler{
		users: u,
	}
}

func (h FollowerNotificationHandler) Type() pubsub.EventType {
	return pubsub.EventTypeNewFollower
}

func (h FollowerNotificationHandler) Targets(event *pubsub.Event) ([]notifications.Target, error) {
	target, err := event.GetInt("id")
	if err != nil {
		return nil, err
	}

	return []notifications.Target{{ID: target}}, nil
}

func (h FollowerNotificationHandler) Build(event *pubsub.Event) (*notifications.PushNotification, error) {
	follower, err := event.GetInt("follower")
	if err != nil {
		return nil, err
	}

	user, err := h.users.GetUserByID(follower)
	if err != nil {
		return nil, err
	}

	return notifications.NewFollowerNotification(follower, user.DisplayName), nil
}

package notifications

type NotificationCategory string

const (
	NEW_STORY    NotificationCategory = "NEW_STORY"
	NEW_FOLLOWER NotificationCategory = "NEW_FOLLOWER"
)

type Alert struct {
	Body      string   `json:"body,omitempty"`
	Key       string   `json:"loc-key"`
	Arguments []string `json:"loc-args"`
}

// PushNotification is JSON encoded and sent to the APNS service.
type PushNotification struct {
	Category   NotificationCategory   `json:"category"`
	Alert      Alert                  `json:"alert"`
	Arguments  map[string]interface{} `json:"arguments"`
	CollapseID string                 `json:"-"`
}

// Target is a user a notification should be delivered to.
type Target struct {
	ID int
}

// Notification is an inbox entry kept after a push was delivered.
type Notification struct {
	ID        string                 `json:"id"`
	Timestamp int64                  `json:"timestamp"`
	From      int                    `json:"from"`
	Category  NotificationCategory   `json:"category"`
	Arguments map[string]interface{} `json:"arguments"`
}

// APNS sends push notifications to a device.
type APNS interface {
	Send(target string, notification PushNotification) error
}

func NewStoryNotification(id string, creator int, creatorName string) *PushNotification {
	return &PushNotification{
		Category: NEW_STORY,
		Alert: Alert{
			Key:       "new_story_notification",
			Arguments: []string{creatorName},
		},
		Arguments:  map[string]interface{}{"id": id, "creator": creator},
		CollapseID: id,
	}
}

func NewFollowerNotification(id int, follower string) *PushNotification {
	return &PushNotification{
		Category: NEW_FOLLOWER,
		Alert: Alert{
			Key:       "new_follower_notification",
			Arguments: []string{follower},
		},
		Arguments: map[string]interface{}{"id": id},
	}
}

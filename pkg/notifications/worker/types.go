package worker

import (
	"github.com/glimpsesocial/glimpse/pkg/devices"
	"github.com/glimpsesocial/glimpse/pkg/notifications"
)

type Job struct {
	Target       notifications.Target
	Notification *notifications.PushNotification
}

type Config struct {
	APNS    notifications.APNS
	Limiter *notifications.Limiter
	Devices *devices.Backend
	Storage *notifications.Storage
}

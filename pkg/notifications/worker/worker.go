package worker

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/glimpsesocial/glimpse/pkg/notifications"
)

type Worker struct {
	Work        chan Job
	WorkerQueue chan chan Job
	QuitChan    chan bool

	unregistered chan string
	config       *Config
}

func NewWorker(pool chan chan Job, config *Config) *Worker {
	return &Worker{
		Work:         make(chan Job),
		WorkerQueue:  pool,
		QuitChan:     make(chan bool),
		unregistered: make(chan string, 100),
		config:       config,
	}
}

func (w *Worker) Start() {

	go w.wipeDevices()

	go func() {
		for {
			w.WorkerQueue <- w.Work

			select {
			case job := <-w.Work:
				// Receive a work request.
				w.handle(job)
			case <-w.QuitChan:
				// We have been asked to stop.
				close(w.unregistered)
				return
			}
		}
	}()
}

func (w *Worker) Stop() {
	go func() {
		w.QuitChan <- true
	}()
}

func (w *Worker) handle(job Job) {
	if !w.config.Limiter.ShouldSendNotification(job.Target, job.Notification) {
		return
	}

	d, err := w.config.Devices.GetDevicesForUser(job.Target.ID)
	if err != nil {
		log.Printf("devices.GetDevicesForUser err: %v\n", err)
		return
	}

	for _, device := range d {
		go func(token string) {
			err := w.config.APNS.Send(token, *job.Notification)
			if err != nil {
				log.Printf("failed to send to target \"%s\" with error: %s\n", token, err)

				if err == notifications.ErrDeviceUnregistered {
					w.unregistered <- token
				}
			}
		}(device.Token)
	}

	w.config.Limiter.SentNotification(job.Target, job.Notification)

	store := getNotificationForStore(job.Notification)
	if store == nil {
		return
	}

	err = w.config.Storage.Store(job.Target.ID, store)
	if err != nil {
		log.Printf("notificationStorage.Store err: %v\n", err)
	}
}

func getNotificationForStore(notification *notifications.PushNotification) *notifications.Notification {
	switch notification.Category {
	case notifications.NEW_FOLLOWER:
		return &notifications.Notification{
			ID:        uuid.NewString(),
			Timestamp: time.Now().Unix(),
			From:      notification.Arguments["id"].(int),
			Category:  notification.Category,
		}
	case notifications.NEW_STORY:
		return &notifications.Notification{
			ID:        uuid.NewString(),
			Timestamp: time.Now().Unix(),
			From:      notification.Arguments["creator"].(int),
			Category:  notification.Category,
			Arguments: map[string]interface{}{"story": notification.Arguments["id"]},
		}
	default:
		return nil
	}
}

func (w *Worker) wipeDevices() {
	for device := range w.unregistered {
		log.Printf("removing device: %s", device)

		err := w.config.Devices.RemoveDevice(device)
		if err != nil {
			log.Printf("failed to remove device err: %s", err)
		}
	}
}

package notifications_test

import (
	"strconv"
	"testing"

	"github.com/alicebob/miniredis"

	"github.com/glimpsesocial/glimpse/pkg/conf"
	"github.com/glimpsesocial/glimpse/pkg/notifications"
	"github.com/glimpsesocial/glimpse/pkg/redis"
)

func newTestStorage(t *testing.T) (*notifications.Storage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}

	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatal(err)
	}

	rdb := redis.NewRedis(conf.RedisConf{
		Host:       mr.Host(),
		Port:       port,
		DisableTLS: true,
	})

	return notifications.NewStorage(rdb), mr
}

func TestStorage_StoreAndGet(t *testing.T) {
	storage, mr := newTestStorage(t)
	defer mr.Close()

	user := 1

	for i := 0; i < 12; i++ {
		err := storage.Store(user, &notifications.Notification{
			ID:       strconv.Itoa(i),
			From:     2,
			Category: notifications.NEW_STORY,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	list, err := storage.GetNotifications(user)
	if err != nil {
		t.Fatal(err)
	}

	if len(list) != 10 {
		t.Fatalf("inbox should keep the 10 most recent, got %d", len(list))
	}

	if list[0].ID != "11" {
		t.Fatalf("newest notification should come first, got %s", list[0].ID)
	}

	if !storage.HasNewNotifications(user) {
		t.Fatal("expected unread notifications")
	}

	storage.MarkNotificationsViewed(user)

	if storage.HasNewNotifications(user) {
		t.Fatal("expected notifications to be marked viewed")
	}
}

func TestStorage_EmptyInbox(t *testing.T) {
	storage, mr := newTestStorage(t)
	defer mr.Close()

	list, err := storage.GetNotifications(1)
	if err != nil {
		t.Fatal(err)
	}

	if len(list) != 0 {
		t.Fatalf("expected empty inbox, got %v", list)
	}

	if storage.HasNewNotifications(1) {
		t.Fatal("empty inbox has no unread notifications")
	}
}

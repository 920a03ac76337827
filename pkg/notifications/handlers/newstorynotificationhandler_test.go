package handlers_test

import (
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/glimpsesocial/glimpse/pkg/followers"
	"github.com/glimpsesocial/glimpse/pkg/notifications"
	"github.com/glimpsesocial/glimpse/pkg/notifications/handlers"
	"github.com/glimpsesocial/glimpse/pkg/pubsub"
	"github.com/glimpsesocial/glimpse/pkg/stories"
	"github.com/glimpsesocial/glimpse/pkg/users"
)

func TestNewStoryNotificationHandler_Targets_Public(t *testing.T) {
	raw := pubsub.NewStoryEvent(&stories.Story{
		ID:      "story-1",
		Author:  stories.Author{ID: 12},
		Privacy: stories.PrivacyPublic,
	})

	event, err := getRawEvent(&raw)
	if err != nil {
		t.Fatal(err)
	}

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	handler := handlers.NewNewStoryNotificationHandler(followers.NewFollowersBackend(db), nil)

	mock.
		ExpectPrepare("SELECT").
		ExpectQuery().
		WillReturnRows(mock.NewRows([]string{"follower"}).AddRow(1).AddRow(2))

	targets, err := handler.Targets(event)
	if err != nil {
		t.Fatal(err)
	}

	expected := []notifications.Target{{ID: 1}, {ID: 2}}

	if !reflect.DeepEqual(targets, expected) {
		t.Fatalf("expected %v actual %v", expected, targets)
	}
}

func TestNewStoryNotificationHandler_Targets_FriendsOnly(t *testing.T) {
	raw := pubsub.NewStoryEvent(&stories.Story{
		ID:      "story-1",
		Author:  stories.Author{ID: 12},
		Privacy: stories.PrivacyFriends,
	})

	event, err := getRawEvent(&raw)
	if err != nil {
		t.Fatal(err)
	}

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	handler := handlers.NewNewStoryNotificationHandler(followers.NewFollowersBackend(db), nil)

	mock.
		ExpectPrepare("SELECT").
		ExpectQuery().
		WillReturnRows(mock.NewRows([]string{"id", "display_name", "username", "image"}).FromCSVString("1,foo,foo,foo.png"))

	targets, err := handler.Targets(event)
	if err != nil {
		t.Fatal(err)
	}

	expected := []notifications.Target{{ID: 1}}

	if !reflect.DeepEqual(targets, expected) {
		t.Fatalf("expected %v actual %v", expected, targets)
	}
}

func TestNewStoryNotificationHandler_Targets_Private(t *testing.T) {
	raw := pubsub.NewStoryEvent(&stories.Story{
		ID:      "story-1",
		Author:  stories.Author{ID: 12},
		Privacy: stories.PrivacyPrivate,
	})

	event, err := getRawEvent(&raw)
	if err != nil {
		t.Fatal(err)
	}

	handler := handlers.NewNewStoryNotificationHandler(nil, nil)

	targets, err := handler.Targets(event)
	if err != nil {
		t.Fatal(err)
	}

	if len(targets) != 0 {
		t.Fatalf("private stories notify nobody, got %v", targets)
	}
}

func TestNewStoryNotificationHandler_Build(t *testing.T) {
	raw := pubsub.NewStoryEvent(&stories.Story{
		ID:      "story-1",
		Author:  stories.Author{ID: 12},
		Privacy: stories.PrivacyPublic,
	})

	event, err := getRawEvent(&raw)
	if err != nil {
		t.Fatal(err)
	}

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	handler := handlers.NewNewStoryNotificationHandler(nil, users.NewBackend(db))

	mock.
		ExpectPrepare("SELECT").
		ExpectQuery().
		WillReturnRows(mock.NewRows([]string{"id", "display_name", "username", "image"}).FromCSVString("12,foo,foo,foo.png"))

	n, err := handler.Build(event)
	if err != nil {
		t.Fatal(err)
	}

	notification := &notifications.PushNotification{
		Category: notifications.NEW_STORY,
		Alert: notifications.Alert{
			Key:       "new_story_notification",
			Arguments: []string{"foo"},
		},
		Arguments:  map[string]interface{}{"id": "story-1", "creator": 12},
		CollapseID: "story-1",
	}

	if !reflect.DeepEqual(n, notification) {
		t.Fatalf("expected %v actual %v", notification, n)
	}
}

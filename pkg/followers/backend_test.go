package followers_test

import (
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/glimpsesocial/glimpse/pkg/followers"
)

func TestFollowersBackend_FollowUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	backend := followers.NewFollowersBackend(db)

	mock.ExpectPrepare("^INSERT (.+)").ExpectExec().
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = backend.FollowUser(1, 2)
	if err != nil {
		t.Fatal(err)
	}
}

func TestFollowersBackend_AreFriends(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	backend := followers.NewFollowersBackend(db)

	mock.ExpectPrepare("SELECT").
		ExpectQuery().
		WithArgs(1, 2).
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))

	friends, err := backend.AreFriends(1, 2)
	if err != nil {
		t.Fatal(err)
	}

	if !friends {
		t.Fatal("expected users to be friends")
	}
}

func TestFollowersBackend_GetFriends(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	backend := followers.NewFollowersBackend(db)

	mock.ExpectPrepare("SELECT").
		ExpectQuery().
		WithArgs(1).
		WillReturnRows(mock.NewRows([]string{"id", "display_name", "username", "image"}).FromCSVString("2,foo,foo,foo.png"))

	friends, err := backend.GetFriends(1)
	if err != nil {
		t.Fatal(err)
	}

	if len(friends) != 1 || friends[0].ID != 2 {
		t.Fatalf("unexpected friends %v", friends)
	}
}

func TestFollowersBackend_GetAllFollowerIDsFor(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	backend := followers.NewFollowersBackend(db)

	mock.ExpectPrepare("SELECT").
		ExpectQuery().
		WithArgs(1).
		WillReturnRows(mock.NewRows([]string{"follower"}).AddRow(2).AddRow(3))

	ids, err := backend.GetAllFollowerIDsFor(1)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(ids, []int{2, 3}) {
		t.Fatalf("unexpected ids %v", ids)
	}
}

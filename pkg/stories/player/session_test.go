package player_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glimpsesocial/glimpse/pkg/stories"
	"github.com/glimpsesocial/glimpse/pkg/stories/player"
)

type fakeRecorder struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeRecorder) RecordView(story string, viewer int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, story)
	return f.err
}

func (f *fakeRecorder) waitForCalls(t *testing.T, count int) []string {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		f.mu.Lock()
		if len(f.calls) >= count {
			calls := append([]string{}, f.calls...)
			f.mu.Unlock()
			return calls
		}
		f.mu.Unlock()

		time.Sleep(5 * time.Millisecond)
	}

	t.Fatalf("timed out waiting for %d recorded views", count)
	return nil
}

func group(ids ...string) stories.Group {
	group := stories.Group{Author: stories.Author{ID: 1}}
	for _, id := range ids {
		group.Stories = append(group.Stories, &stories.Story{
			ID:        id,
			Author:    group.Author,
			MediaType: stories.MediaTypeImage,
		})
	}

	return group
}

func TestSession_Open(t *testing.T) {
	recorder := &fakeRecorder{}
	session := player.NewSession(2, recorder)

	session.Open(group("a", "b"), 0)

	if session.State() != player.StatePlaying {
		t.Fatalf("expected playing, got %s", session.State())
	}

	if session.Current().ID != "a" {
		t.Fatal("should start at the first story")
	}

	calls := recorder.waitForCalls(t, 1)
	if calls[0] != "a" {
		t.Fatalf("unexpected recorded views %v", calls)
	}
}

func TestSession_Open_EmptyGroup(t *testing.T) {
	session := player.NewSession(2, &fakeRecorder{})

	session.Open(stories.Group{}, 0)

	if session.State() != player.StateFinished {
		t.Fatalf("expected finished, got %s", session.State())
	}
}

func TestSession_Open_InvalidStartClamped(t *testing.T) {
	session := player.NewSession(2, &fakeRecorder{})

	session.Open(group("a", "b"), 7)

	if session.Current().ID != "a" {
		t.Fatal("out of range start should fall back to the first story")
	}
}

func TestSession_Advance(t *testing.T) {
	session := player.NewSession(2, &fakeRecorder{})

	session.Open(group("a", "b"), 0)

	session.Advance(2 * time.Second)
	if session.Current().ID != "a" {
		t.Fatal("story should still be playing")
	}

	if session.Progress() != 0.4 {
		t.Fatalf("unexpected progress %v", session.Progress())
	}

	session.Advance(3 * time.Second)
	if session.Current().ID != "b" {
		t.Fatal("story should have advanced")
	}

	session.Advance(5 * time.Second)
	if session.State() != player.StateFinished {
		t.Fatalf("expected finished, got %s", session.State())
	}
}

func TestSession_VideoDurationCapped(t *testing.T) {
	session := player.NewSession(2, &fakeRecorder{})

	session.Open(stories.Group{
		Author: stories.Author{ID: 1},
		Stories: []*stories.Story{
			{ID: "v", Author: stories.Author{ID: 1}, MediaType: stories.MediaTypeVideo, VideoDuration: 60},
		},
	}, 0)

	session.Advance(14 * time.Second)
	if session.State() != player.StatePlaying {
		t.Fatal("capped video should still be playing at 14s")
	}

	session.Advance(2 * time.Second)
	if session.State() != player.StateFinished {
		t.Fatal("capped video should end at 15s")
	}
}

func TestSession_ForwardAndBack(t *testing.T) {
	recorder := &fakeRecorder{}
	session := player.NewSession(2, recorder)

	session.Open(group("a", "b"), 0)

	session.Forward()
	if session.Current().ID != "b" {
		t.Fatal("forward should move to the next story")
	}

	session.Back()
	if session.Current().ID != "a" {
		t.Fatal("back should move to the previous story")
	}

	calls := recorder.waitForCalls(t, 3)
	if len(calls) != 3 {
		t.Fatalf("unexpected recorded views %v", calls)
	}
}

func TestSession_BackAtFirstStoryFinishes(t *testing.T) {
	session := player.NewSession(2, &fakeRecorder{})

	session.Open(group("a", "b"), 0)
	session.Back()

	if session.State() != player.StateFinished {
		t.Fatalf("expected finished, got %s", session.State())
	}
}

func TestSession_PauseAndResume(t *testing.T) {
	session := player.NewSession(2, &fakeRecorder{})

	session.Open(group("a"), 0)
	session.Advance(2 * time.Second)

	session.Pause()
	session.Advance(10 * time.Second)

	if session.State() != player.StatePaused {
		t.Fatal("advance must not move a paused session")
	}

	if session.Progress() != 0.4 {
		t.Fatalf("pause should freeze progress, got %v", session.Progress())
	}

	session.Resume()
	session.Advance(3 * time.Second)

	if session.State() != player.StateFinished {
		t.Fatalf("expected finished, got %s", session.State())
	}
}

func TestSession_AuthorSelfViewNotRecorded(t *testing.T) {
	recorder := &fakeRecorder{}
	session := player.NewSession(1, recorder)

	session.Open(group("a"), 0)

	time.Sleep(50 * time.Millisecond)

	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	if len(recorder.calls) != 0 {
		t.Fatalf("self views must not be recorded, got %v", recorder.calls)
	}
}

func TestSession_RecorderErrorSurfaces(t *testing.T) {
	recorder := &fakeRecorder{err: errors.New("store down")}
	session := player.NewSession(2, recorder)

	session.Open(group("a", "b"), 0)

	select {
	case err := <-session.Errors():
		if err == nil {
			t.Fatal("expected an error")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for recorder error")
	}

	session.Forward()
	if session.Current().ID != "b" {
		t.Fatal("playback should continue despite recorder errors")
	}
}

func TestSession_RemoveStory(t *testing.T) {
	session := player.NewSession(2, &fakeRecorder{})

	session.Open(group("a", "b", "c"), 1)

	session.RemoveStory("a")
	if session.Current().ID != "b" {
		t.Fatal("removing an earlier story should not change the current one")
	}

	session.RemoveStory("b")
	if session.Current().ID != "c" {
		t.Fatal("removing the current story should move to the next")
	}

	session.RemoveStory("c")
	if session.State() != player.StateFinished {
		t.Fatalf("expected finished once drained, got %s", session.State())
	}
}

func TestSession_Close(t *testing.T) {
	session := player.NewSession(2, &fakeRecorder{})

	session.Open(group("a"), 0)
	session.Close()

	if session.State() != player.StateIdle {
		t.Fatalf("expected idle, got %s", session.State())
	}

	if session.Current() != nil {
		t.Fatal("closed session has no current story")
	}
}

func TestSession_OnChange(t *testing.T) {
	session := player.NewSession(2, &fakeRecorder{})

	var mu sync.Mutex
	states := make([]player.State, 0)

	session.OnChange(func(state player.State, index int, progress float64) {
		mu.Lock()
		states = append(states, state)
		mu.Unlock()
	})

	session.Open(group("a"), 0)
	session.Pause()
	session.Resume()
	session.Forward()

	mu.Lock()
	defer mu.Unlock()

	expected := []player.State{player.StatePlaying, player.StatePaused, player.StatePlaying, player.StateFinished}
	if len(states) != len(expected) {
		t.Fatalf("unexpected transitions %v", states)
	}

	for i, state := range expected {
		if states[i] != state {
			t.Fatalf("transition %d should be %s, got %s", i, state, states[i])
		}
	}
}

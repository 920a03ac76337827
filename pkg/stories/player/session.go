// Package player drives timed playback across one story group at a time.
//
// The session is a cooperative state machine, the host event loop calls
// Advance with the elapsed delta and the session never blocks the caller.
// View recording is issued fire-and-forget, a failing store must not stall
// the timeline.
package player

import (
	"sync"
	"time"

	"github.com/glimpsesocial/glimpse/pkg/stories"
)

// State describes where playback currently is.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	}

	return "unknown"
}

const (
	imageDuration    = 5 * time.Second
	textDuration     = 6 * time.Second
	maxVideoDuration = 15 * time.Second
)

// ViewRecorder records that a viewer saw a story.
type ViewRecorder interface {
	RecordView(story string, viewer int) error
}

// Session plays one story group for one viewer. Independent sessions share no
// state beyond the recorder behind them.
type Session struct {
	mu sync.Mutex

	viewer   int
	recorder ViewRecorder

	group   stories.Group
	state   State
	index   int
	elapsed time.Duration

	onChange func(state State, index int, progress float64)
	errs     chan error
}

func NewSession(viewer int, recorder ViewRecorder) *Session {
	return &Session{
		viewer:   viewer,
		recorder: recorder,
		state:    StateIdle,
		errs:     make(chan error, 16),
	}
}

// OnChange registers an observer notified after every transition. It must be
// set before Open.
func (s *Session) OnChange(f func(state State, index int, progress float64)) {
	s.mu.Lock()
	s.onChange = f
	s.mu.Unlock()
}

// Errors surfaces failed side effects, playback continues regardless.
func (s *Session) Errors() <-chan error {
	return s.errs
}

// Open starts playback of a group at the given index.
func (s *Session) Open(group stories.Group, start int) {
	s.mu.Lock()

	if s.state != StateIdle {
		s.mu.Unlock()
		return
	}

	if len(group.Stories) == 0 {
		s.state = StateFinished
		s.notifyLocked()
		return
	}

	if start < 0 || start >= len(group.Stories) {
		start = 0
	}

	s.group = group
	s.index = start
	s.elapsed = 0
	s.state = StatePlaying

	s.recordViewLocked()
	s.notifyLocked()
}

// Advance moves the timer forward, transitioning to the next story once the
// current one has played out.
func (s *Session) Advance(delta time.Duration) {
	s.mu.Lock()

	if s.state != StatePlaying {
		s.mu.Unlock()
		return
	}

	s.elapsed += delta
	if s.elapsed < s.durationLocked() {
		s.notifyLocked()
		return
	}

	s.nextLocked()
}

// Forward skips to the next story regardless of progress.
func (s *Session) Forward() {
	s.mu.Lock()

	if s.state != StatePlaying && s.state != StatePaused {
		s.mu.Unlock()
		return
	}

	s.state = StatePlaying
	s.nextLocked()
}

// Back restarts at the previous story, or exits when already at the first.
func (s *Session) Back() {
	s.mu.Lock()

	if s.state != StatePlaying && s.state != StatePaused {
		s.mu.Unlock()
		return
	}

	if s.index == 0 {
		s.state = StateFinished
		s.notifyLocked()
		return
	}

	s.index--
	s.elapsed = 0
	s.state = StatePlaying

	s.recordViewLocked()
	s.notifyLocked()
}

// Pause freezes the timer without resetting it.
func (s *Session) Pause() {
	s.mu.Lock()

	if s.state != StatePlaying {
		s.mu.Unlock()
		return
	}

	s.state = StatePaused
	s.notifyLocked()
}

// Resume continues from the frozen progress, the story is not restarted.
func (s *Session) Resume() {
	s.mu.Lock()

	if s.state != StatePaused {
		s.mu.Unlock()
		return
	}

	s.state = StatePlaying
	s.notifyLocked()
}

// Close returns the session to idle. No further side effects are issued until
// the session is opened again.
func (s *Session) Close() {
	s.mu.Lock()

	s.state = StateIdle
	s.group = stories.Group{}
	s.index = 0
	s.elapsed = 0

	s.notifyLocked()
}

// RemoveStory drops a story that was deleted mid-playback. A drained group
// finishes the session.
func (s *Session) RemoveStory(id string) {
	s.mu.Lock()

	if s.state != StatePlaying && s.state != StatePaused {
		s.mu.Unlock()
		return
	}

	remaining := make([]*stories.Story, 0, len(s.group.Stories))
	removed := -1
	for i, story := range s.group.Stories {
		if story.ID == id {
			removed = i
			continue
		}

		remaining = append(remaining, story)
	}

	if removed == -1 {
		s.mu.Unlock()
		return
	}

	s.group.Stories = remaining

	if len(remaining) == 0 {
		s.state = StateFinished
		s.notifyLocked()
		return
	}

	if removed < s.index {
		s.index--
		s.notifyLocked()
		return
	}

	if removed == s.index {
		if s.index >= len(remaining) {
			s.index = len(remaining) - 1
		}

		s.elapsed = 0
		s.recordViewLocked()
	}

	s.notifyLocked()
}

// State returns the current playback state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the story being played, nil outside playback.
func (s *Session) Current() *stories.Story {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying && s.state != StatePaused {
		return nil
	}

	return s.group.Stories[s.index]
}

// Progress returns how far into the current story playback is, between 0 and 1.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressLocked()
}

func (s *Session) nextLocked() {
	if s.index+1 >= len(s.group.Stories) {
		s.state = StateFinished
		s.notifyLocked()
		return
	}

	s.index++
	s.elapsed = 0

	s.recordViewLocked()
	s.notifyLocked()
}

func (s *Session) durationLocked() time.Duration {
	story := s.group.Stories[s.index]

	switch story.MediaType {
	case stories.MediaTypeImage:
		return imageDuration
	case stories.MediaTypeText:
		return textDuration
	case stories.MediaTypeVideo:
		if story.VideoDuration > 0 {
			d := time.Duration(story.VideoDuration * float64(time.Second))
			if d < maxVideoDuration {
				return d
			}
		}

		return maxVideoDuration
	}

	return imageDuration
}

func (s *Session) progressLocked() float64 {
	if s.state != StatePlaying && s.state != StatePaused {
		return 0
	}

	progress := float64(s.elapsed) / float64(s.durationLocked())
	if progress > 1 {
		return 1
	}

	return progress
}

// recordViewLocked issues the view side effect for the current story without
// awaiting it. Author self-views are never recorded.
func (s *Session) recordViewLocked() {
	story := s.group.Stories[s.index]
	if story.Author.ID == s.viewer {
		return
	}

	viewer := s.viewer
	go func() {
		err := s.recorder.RecordView(story.ID, viewer)
		if err != nil {
			select {
			case s.errs <- err:
			default:
			}
		}
	}()
}

// notifyLocked releases the lock and invokes the observer with a consistent
// snapshot.
func (s *Session) notifyLocked() {
	handler := s.onChange
	state := s.state
	index := s.index
	progress := s.progressLocked()

	s.mu.Unlock()

	if handler != nil {
		handler(state, index, progress)
	}
}

// Package engagement records story views and reactions.
package engagement

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/glimpsesocial/glimpse/pkg/clock"
	"github.com/glimpsesocial/glimpse/pkg/stories"
)

// ErrRateLimited is returned when a caller reacts while a previous reaction is
// still in flight or inside the cooldown window. The caller is told, nothing
// is queued or retried.
var ErrRateLimited = errors.New("rate limited")

// reactionCooldown keeps reaction bursts from exhausting the store's write
// quota.
const reactionCooldown = 500 * time.Millisecond

const placeholder = "placeholder"

// Store is the persistence needed by the tracker, satisfied by stories.Backend.
type Store interface {
	AddViewer(story string, viewer int) error
	AddReaction(story string, user int, emoji string, reactedAt int64) error
	RemoveReaction(story string, user int, emoji string) error
	RemoveAllReactionsByUser(story string, user int) error
	GetReactions(story string) ([]stories.Reaction, error)
}

type Tracker struct {
	store Store
	rdb   *redis.Client
	clock clock.Clock

	mu       sync.Mutex
	inflight map[int]bool
}

func NewTracker(store Store, rdb *redis.Client, clk clock.Clock) *Tracker {
	return &Tracker{
		store:    store,
		rdb:      rdb,
		clock:    clk,
		inflight: make(map[int]bool),
	}
}

// RecordView marks a story as seen by the viewer. Safe to call repeatedly, the
// store absorbs duplicates and author self-views.
func (t *Tracker) RecordView(story string, viewer int) error {
	return t.store.AddViewer(story, viewer)
}

// AddReaction upserts a (user, emoji) reaction. A caller gets one reaction in
// flight at a time and a cooldown between attempts.
func (t *Tracker) AddReaction(story string, user int, emoji string) error {
	t.mu.Lock()

	if t.inflight[user] {
		t.mu.Unlock()
		return ErrRateLimited
	}

	if t.isOnCooldown(user) {
		t.mu.Unlock()
		return ErrRateLimited
	}

	t.inflight[user] = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		delete(t.inflight, user)
		t.mu.Unlock()
	}()

	err := t.store.AddReaction(story, user, emoji, t.clock.Now().Unix())
	if err != nil {
		return err
	}

	t.startCooldown(user)

	return nil
}

// RemoveReaction deletes a reaction, absent reactions are a no-op.
func (t *Tracker) RemoveReaction(story string, user int, emoji string) error {
	return t.store.RemoveReaction(story, user, emoji)
}

// RemoveAllReactionsByUser deletes every reaction the user left on the story.
func (t *Tracker) RemoveAllReactionsByUser(story string, user int) error {
	return t.store.RemoveAllReactionsByUser(story, user)
}

// Summarize aggregates the story's current reactions per emoji.
func (t *Tracker) Summarize(story string) (map[string]stories.Summary, error) {
	reactions, err := t.store.GetReactions(story)
	if err != nil {
		return nil, err
	}

	return stories.SummarizeReactions(reactions), nil
}

func (t *Tracker) isOnCooldown(user int) bool {
	res, _ := t.rdb.Get(t.rdb.Context(), cooldownKey(user)).Result()
	return res == placeholder
}

func (t *Tracker) startCooldown(user int) {
	t.rdb.Set(t.rdb.Context(), cooldownKey(user), placeholder, reactionCooldown)
}

func cooldownKey(user int) string {
	return fmt.Sprintf("reaction_limit_%d", user)
}

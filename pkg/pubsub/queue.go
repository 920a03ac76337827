package pubsub

import (
	"encoding/json"
	"log"

	"github.com/go-redis/redis/v8"
)

type Topic string

const (
	// StoryTopic carries story lifecycle events.
	StoryTopic Topic = "story"

	// UserTopic carries social graph events.
	UserTopic Topic = "user"
)

type Queue struct {
	buffer chan *Event

	rdb *redis.Client
}

// NewQueue creates a new redis pubsub Queue.
func NewQueue(rdb *redis.Client) *Queue {
	return &Queue{
		buffer: make(chan *Event, 100),
		rdb:    rdb,
	}
}

// Publish an Event on a specific topic.
func (q *Queue) Publish(topic Topic, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return q.rdb.Publish(q.rdb.Context(), string(topic), string(data)).Err()
}

// Subscribe to a list of topics.
func (q *Queue) Subscribe(topics ...Topic) <-chan *Event {
	names := make([]string, 0)
	for _, topic := range topics {
		names = append(names, string(topic))
	}

	pubsub := q.rdb.Subscribe(q.rdb.Context(), names...)
	go q.read(pubsub)

	return q.buffer
}

func (q *Queue) read(pubsub *redis.PubSub) {
	for msg := range pubsub.Channel() {
		event := &Event{}

		err := json.Unmarshal([]byte(msg.Payload), event)
		if err != nil {
			log.Printf("failed to unmarshal event err: %v", err)
			continue
		}

		q.buffer <- event
	}
}

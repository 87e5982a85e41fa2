// Package events provides a small publish-subscribe bus the frame loop
// and scene manager use to broadcast observability events — frame
// timing, scene changes, dissolve progress — to anyone listening
// (structured logging, a status endpoint, future tooling) without
// coupling the render path to any particular consumer.
package events

import "sync"

// Topic names one category of broadcast event.
type Topic string

const (
	// TopicFrameStats carries a FrameStats after every rendered frame.
	TopicFrameStats Topic = "FRAME_STATS"
	// TopicSceneChanged carries a scene.Selection when the active
	// selection changes (on load or dissolve completion).
	TopicSceneChanged Topic = "SCENE_CHANGED"
	// TopicDissolveProgress carries dissolve phase transitions.
	TopicDissolveProgress Topic = "DISSOLVE_PROGRESS"
	// TopicDestinationError carries an output fan-out failure.
	TopicDestinationError Topic = "DESTINATION_ERROR"
)

// Subscriber is a single topic subscription; Channel delivers published
// messages and is closed on Unsubscribe.
type Subscriber struct {
	id      int
	topic   Topic
	Channel chan interface{}
}

// Bus distributes published messages to every subscriber of a topic.
// Publish never blocks: a subscriber with a full buffer misses the
// message rather than stalling the frame loop.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Topic][]*Subscriber
	nextID      int
}

// New creates an empty event bus.
func New() *Bus {
	return &Bus{subscribers: make(map[Topic][]*Subscriber)}
}

// Subscribe opens a new subscription for topic with the given channel
// buffer size.
func (b *Bus) Subscribe(topic Topic, bufferSize int) *Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscriber{
		id:      b.nextID,
		topic:   topic,
		Channel: make(chan interface{}, bufferSize),
	}
	b.subscribers[topic] = append(b.subscribers[topic], sub)
	return sub
}

// Unsubscribe closes sub's channel and removes it from its topic.
func (b *Bus) Unsubscribe(sub *Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[sub.topic]
	for i, s := range subs {
		if s.id == sub.id {
			close(s.Channel)
			b.subscribers[sub.topic] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Publish sends message to every subscriber of topic, dropping it for
// any subscriber whose buffer is currently full.
func (b *Bus) Publish(topic Topic, message interface{}) {
	b.mu.RLock()
	subs := b.subscribers[topic]
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub.Channel <- message:
		default:
		}
	}
}

// SubscriberCount reports how many subscribers topic currently has.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[topic])
}

// FrameStats is published once per rendered frame on TopicFrameStats.
type FrameStats struct {
	FrameDurationMs float64
	BudgetMs        float64
	Dissolving      bool
	Paused          bool
}

// DestinationError is published on TopicDestinationError whenever a
// fan-out send to one output destination fails; the frame loop keeps
// rendering regardless.
type DestinationError struct {
	Destination string
	Err         error
}

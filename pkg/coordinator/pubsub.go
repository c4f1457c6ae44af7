package coordinator

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// subscriptionBuffer is the per-subscriber frame buffer. A subscriber that
// falls further behind than this loses frames and recovers them from the
// journal.
const subscriptionBuffer = 64

// PublishEvent publishes an encoded event frame on the run's live channel.
// Delivery is fire-and-forget: subscribers that miss a frame catch up from
// the journal.
func (c *RedisCoordinator) PublishEvent(ctx context.Context, runID, frame string) error {
	if err := c.client.Publish(ctx, eventsChannel(runID), frame).Err(); err != nil {
		return fmt.Errorf("publishing event for run %s: %w", runID, err)
	}
	return nil
}

// Subscription is a live event feed for a single run. Frames arrive as the
// encoded JSON strings passed to PublishEvent.
type Subscription struct {
	pubsub    *redis.PubSub
	ch        chan string
	done      chan struct{}
	closeOnce sync.Once
}

// Subscribe opens a subscription on the run's live channel. It waits for the
// subscribe confirmation before returning, so a caller that subscribes before
// reading the journal cannot miss frames published after the call returns.
func (c *RedisCoordinator) Subscribe(ctx context.Context, runID string) (*Subscription, error) {
	pubsub := c.client.Subscribe(ctx, eventsChannel(runID))

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribing to run %s events: %w", runID, err)
	}

	sub := &Subscription{
		pubsub: pubsub,
		ch:     make(chan string, subscriptionBuffer),
		done:   make(chan struct{}),
	}
	go sub.pump()
	return sub, nil
}

// pump copies message payloads from the pubsub connection into ch and closes
// ch when the subscription ends.
func (s *Subscription) pump() {
	defer close(s.ch)
	for msg := range s.pubsub.Channel() {
		select {
		case s.ch <- msg.Payload:
		case <-s.done:
			return
		}
	}
}

// Channel returns the live frame feed. It is closed when the subscription
// ends.
func (s *Subscription) Channel() <-chan string {
	return s.ch
}

// Close terminates the subscription. Channel is closed shortly after. Safe to
// call more than once.
func (s *Subscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}

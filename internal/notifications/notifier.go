// Package notifications publishes swap lifecycle events into Redis channels.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// SwapEvent is the payload published when a swap changes state. Subscribers
// receive it JSON-encoded on the affected user's channel.
type SwapEvent struct {
	SwapID      uint   `json:"swap_id"`
	Status      string `json:"status"`
	ActorID     uint   `json:"actor_id"`
	RequesterID uint   `json:"requester_id"`
	ResponderID uint   `json:"responder_id"`
}

// Notifier provides helpers to publish notifications into Redis channels.
// All methods are no-ops when the Redis client is nil so callers never need
// to guard on cache availability.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser sends a notification payload to a user's channel.
func (n *Notifier) PublishUser(
	ctx context.Context, userID uint, payload string,
) error {
	if n.rdb == nil {
		return nil
	}
	channel := fmt.Sprintf("notifications:user:%d", userID)
	return n.rdb.Publish(ctx, channel, payload).Err()
}

// PublishSwapEvent notifies both parties of a swap state change. The actor
// already knows what they did, but clients may have multiple sessions open,
// so both channels receive the event.
func (n *Notifier) PublishSwapEvent(ctx context.Context, event SwapEvent) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if err := n.PublishUser(ctx, event.RequesterID, string(payload)); err != nil {
		return err
	}
	return n.PublishUser(ctx, event.ResponderID, string(payload))
}

// StartPatternSubscriber subscribes to pattern `notifications:user:*` and calls
// onMessage for each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "notifications:user:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "notifications:user:" + strconv.FormatUint(uint64(userID), 10)
}

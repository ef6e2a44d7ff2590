package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SecretaryStream receives every ledger and directory change.
const SecretaryStream = "secretary.events"

const (
	NoticeCreated = "notice.created"
	NoticeUpdated = "notice.updated"
	NoticeDeleted = "notice.deleted"

	MemberCreated = "member.created"
	MemberDeleted = "member.deleted"

	FundCreated = "fund.created"
	FundDeleted = "fund.deleted"
)

// Event is the envelope appended to the stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Deleted is the payload of every *.deleted event.
type Deleted struct {
	ID string `json:"id"`
}

// Publisher records a change event.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data any) error
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }

// RedisPublisher appends events to a Redis stream.
type RedisPublisher struct {
	client *redis.Client
	stream string
}

// NewRedisPublisher publishes to stream through client.
func NewRedisPublisher(client *redis.Client, stream string) *RedisPublisher {
	return &RedisPublisher{client: client, stream: stream}
}

func (p *RedisPublisher) Publish(ctx context.Context, eventType string, data any) error {
	payload, err := json.Marshal(Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{"event": payload},
	}
	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

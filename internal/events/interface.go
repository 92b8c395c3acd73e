package events

import (
	"context"
	"time"
)

// Engagement event types mirroring the notification kinds.
const (
	EventFollow  = "follow"
	EventLike    = "like"
	EventComment = "comment"
)

// EngagementEvent is published after a notification is persisted so
// downstream consumers (push senders, feed rankers) can react without
// polling the notifications table.
type EngagementEvent struct {
	Type        string    `json:"type"`
	ActorID     string    `json:"actor_id"`
	RecipientID string    `json:"recipient_id"`
	PostID      string    `json:"post_id,omitempty"`
	CommentID   string    `json:"comment_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Publisher publishes engagement events. Publishing is best-effort; the
// notification row in the database is the source of truth.
type Publisher interface {
	PublishEngagement(ctx context.Context, event *EngagementEvent) error
	Close() error
}

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishEngagement(ctx context.Context, event *EngagementEvent) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }

var _ Publisher = NoopPublisher{}

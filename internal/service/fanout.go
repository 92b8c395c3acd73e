package service

import (
	"context"
	"time"

	"github.com/Hamzahxou/api-x/internal/domain"
	"github.com/Hamzahxou/api-x/internal/events"
	"github.com/Hamzahxou/api-x/internal/repository"
	"github.com/Hamzahxou/api-x/pkg/log"
)

// fanout appends notification records and publishes the matching engagement
// event. It is the single place enforcing the "self-actions never notify"
// invariant.
type fanout struct {
	notifications repository.NotificationRepository
	publisher     events.Publisher
}

func newFanout(notifications repository.NotificationRepository, publisher events.Publisher) *fanout {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &fanout{notifications: notifications, publisher: publisher}
}

// emit persists a notification from fromID to toID. Self-notifications are
// silently skipped. The Kafka event is best-effort: a publish failure is
// logged and does not fail the request.
func (f *fanout) emit(ctx context.Context, typ domain.NotificationType, fromID, toID string, postID, commentID *string) error {
	if fromID == toID {
		return nil
	}

	l := log.Ctx(ctx)

	n := &domain.Notification{
		FromUserID: fromID,
		ToUserID:   toID,
		Type:       typ,
		PostID:     postID,
		CommentID:  commentID,
	}
	if err := f.notifications.Create(ctx, n); err != nil {
		l.Error().Err(err).
			Str("type", string(typ)).
			Str(log.FieldUserID, fromID).
			Msg("failed to create notification")
		return err
	}

	event := &events.EngagementEvent{
		Type:        eventType(typ),
		ActorID:     fromID,
		RecipientID: toID,
		CreatedAt:   time.Now(),
	}
	if postID != nil {
		event.PostID = *postID
	}
	if commentID != nil {
		event.CommentID = *commentID
	}
	if err := f.publisher.PublishEngagement(ctx, event); err != nil {
		l.Warn().Err(err).Str("type", string(typ)).Msg("failed to publish engagement event")
	}

	return nil
}

func eventType(typ domain.NotificationType) string {
	switch typ {
	case domain.NotificationLike:
		return events.EventLike
	case domain.NotificationComment:
		return events.EventComment
	case domain.NotificationFollow:
		return events.EventFollow
	default:
		return string(typ)
	}
}

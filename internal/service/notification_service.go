package service

import (
	"context"
	"errors"

	"github.com/Hamzahxou/api-x/internal/audit"
	"github.com/Hamzahxou/api-x/internal/domain"
	"github.com/Hamzahxou/api-x/internal/repository"
	"github.com/Hamzahxou/api-x/pkg/log"
)

var _ NotificationService = (*notificationServiceImpl)(nil)

// notificationServiceImpl implements NotificationService.
type notificationServiceImpl struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
) NotificationService {
	return &notificationServiceImpl{
		notifications: notifications,
		users:         users,
	}
}

func (s *notificationServiceImpl) resolve(ctx context.Context, subject string) (*domain.User, error) {
	user, err := s.users.GetBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns the caller's notifications, newest-first.
func (s *notificationServiceImpl) List(ctx context.Context, subject string) ([]domain.Notification, error) {
	user, err := s.resolve(ctx, subject)
	if err != nil {
		return nil, err
	}
	return s.notifications.ListByRecipient(ctx, user.ID)
}

// Delete removes one of the caller's notifications. A notification that
// exists but is addressed to someone else is reported as not found.
func (s *notificationServiceImpl) Delete(ctx context.Context, subject, notificationID string) error {
	user, err := s.resolve(ctx, subject)
	if err != nil {
		return err
	}

	if err := s.notifications.DeleteForRecipient(ctx, notificationID, user.ID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).
			Str(log.FieldNotificationID, notificationID).
			Msg("failed to delete notification")
		return err
	}

	audit.LogWithTarget(ctx, audit.ActionDeleteNotification, user.ID, notificationID, "notification deleted")
	return nil
}

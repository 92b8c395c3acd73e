package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hamzahxou/api-x/internal/domain"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM-based notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create creates a new notification.
func (r *GormNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	n.ID = uuid.New().String()

	model := domain.NotificationModel{
		ID:         n.ID,
		FromUserID: n.FromUserID,
		ToUserID:   n.ToUserID,
		Type:       string(n.Type),
		PostID:     n.PostID,
		CommentID:  n.CommentID,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}

	n.CreatedAt = model.CreatedAt
	return nil
}

// ListByRecipient returns the recipient's notifications newest-first,
// populated with sender summary and referenced post/comment.
func (r *GormNotificationRepository) ListByRecipient(ctx context.Context, userID string) ([]domain.Notification, error) {
	var models []domain.NotificationModel
	err := r.db.WithContext(ctx).
		Preload("From").
		Preload("Post").
		Preload("Comment").
		Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]domain.Notification, 0, len(models))
	for i := range models {
		notifications = append(notifications, *models[i].ToDomain())
	}
	return notifications, nil
}

// DeleteForRecipient removes a notification addressed to recipientID.
// Scoping the delete to the recipient keeps other users' notification ids
// from being deletable, or confirmed to exist, by guessing.
func (r *GormNotificationRepository) DeleteForRecipient(ctx context.Context, id, recipientID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND to_user_id = ?", id, recipientID).
		Delete(&domain.NotificationModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

var _ NotificationRepository = (*GormNotificationRepository)(nil)

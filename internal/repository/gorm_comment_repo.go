package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hamzahxou/api-x/internal/domain"
)

// GormCommentRepository implements CommentRepository using GORM.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GORM-based comment repository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment.
func (r *GormCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	comment.ID = uuid.New().String()

	model := domain.CommentModel{
		ID:      comment.ID,
		UserID:  comment.UserID,
		PostID:  comment.PostID,
		Content: comment.Content,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}

	comment.CreatedAt = model.CreatedAt
	return nil
}

// GetByID retrieves a comment by ID.
func (r *GormCommentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	var model domain.CommentModel
	result := r.db.WithContext(ctx).Preload("User").First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// ListByPost returns the post's comments newest-first with author summaries.
func (r *GormCommentRepository) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	var models []domain.CommentModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(models))
	for i := range models {
		comments = append(comments, *models[i].ToDomain())
	}
	return comments, nil
}

// Delete removes the comment and notifications referencing it in one
// transaction.
func (r *GormCommentRepository) Delete(ctx context.Context, commentID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", commentID).
			Delete(&domain.NotificationModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.CommentModel{}, "id = ?", commentID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCommentNotFound
		}
		return nil
	})
}

var _ CommentRepository = (*GormCommentRepository)(nil)

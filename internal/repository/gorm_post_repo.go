package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hamzahxou/api-x/internal/domain"
)

// GormPostRepository implements PostRepository using GORM.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GORM-based post repository.
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a new post.
func (r *GormPostRepository) Create(ctx context.Context, post *domain.Post) error {
	post.ID = uuid.New().String()

	model := domain.PostModel{
		ID:      post.ID,
		UserID:  post.UserID,
		Content: post.Content,
		Image:   post.Image,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}

	post.CreatedAt = model.CreatedAt
	return nil
}

// populated returns a query preloading everything a post response needs:
// author, like rows, and comments with their authors in insertion order.
func (r *GormPostRepository) populated(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Comments.User")
}

// GetByID retrieves a populated post by ID.
func (r *GormPostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	var model domain.PostModel
	result := r.populated(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, result.Error
	}
	return postToDomain(&model), nil
}

// List returns all posts newest-first.
func (r *GormPostRepository) List(ctx context.Context) ([]domain.Post, error) {
	var models []domain.PostModel
	err := r.populated(ctx).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return postsToDomain(models), nil
}

// ListByUser returns the user's posts newest-first.
func (r *GormPostRepository) ListByUser(ctx context.Context, userID string) ([]domain.Post, error) {
	var models []domain.PostModel
	err := r.populated(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return postsToDomain(models), nil
}

// Delete removes the post and everything hanging off it in one transaction:
// notifications referencing the post or its comments, then likes, then
// comments, then the post itself.
func (r *GormPostRepository) Delete(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs []string
		if err := tx.Model(&domain.CommentModel{}).
			Where("post_id = ?", postID).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", postID).
			Delete(&domain.NotificationModel{}).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).
				Delete(&domain.NotificationModel{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("post_id = ?", postID).
			Delete(&domain.PostLikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).
			Delete(&domain.CommentModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.PostModel{}, "id = ?", postID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

// ToggleLike flips userID's membership in the post's like set. Same shape as
// the follow-edge toggle: delete first, insert when nothing was deleted.
func (r *GormPostRepository) ToggleLike(ctx context.Context, postID, userID string) (domain.Toggle, error) {
	outcome := domain.ToggledOff
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&domain.PostLikeModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		model := domain.PostLikeModel{PostID: postID, UserID: userID}
		if err := tx.Create(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				outcome = domain.ToggledOn
				return nil
			}
			return err
		}
		outcome = domain.ToggledOn
		return nil
	})
	if err != nil {
		return domain.ToggledOff, err
	}
	return outcome, nil
}

func postToDomain(m *domain.PostModel) *domain.Post {
	p := &domain.Post{
		ID:          m.ID,
		UserID:      m.UserID,
		Content:     m.Content,
		Image:       m.Image,
		CreatedAt:   m.CreatedAt,
		LikeUserIDs: make([]string, 0, len(m.Likes)),
		Comments:    make([]domain.Comment, 0, len(m.Comments)),
	}
	if m.User.ID != "" {
		p.Author = m.User.ToDomain().Summary()
	}
	for _, like := range m.Likes {
		p.LikeUserIDs = append(p.LikeUserIDs, like.UserID)
	}
	for i := range m.Comments {
		p.Comments = append(p.Comments, *m.Comments[i].ToDomain())
	}
	return p
}

func postsToDomain(models []domain.PostModel) []domain.Post {
	posts := make([]domain.Post, 0, len(models))
	for i := range models {
		posts = append(posts, *postToDomain(&models[i]))
	}
	return posts
}

var _ PostRepository = (*GormPostRepository)(nil)

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Hamzahxou/api-x/internal/domain"
)

// GormFollowRepository implements FollowRepository using GORM.
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GORM-backed follow repository.
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Toggle flips the follow edge from followerID to followingID. The delete
// and conditional insert run in one transaction; the unique index on the
// edge pair backstops concurrent toggles.
func (r *GormFollowRepository) Toggle(ctx context.Context, followerID, followingID string) (domain.Toggle, error) {
	outcome := domain.ToggledOff
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&domain.FollowModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			// Edge existed: this toggle is an unfollow.
			return nil
		}

		model := domain.FollowModel{
			FollowerID:  followerID,
			FollowingID: followingID,
		}
		if err := tx.Create(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Concurrent toggle already created the edge.
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

// IsFollowing checks if followerID follows followingID.
func (r *GormFollowRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountFollowers returns the number of users following userID.
func (r *GormFollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountFollowing returns the number of users userID follows.
func (r *GormFollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

var _ FollowRepository = (*GormFollowRepository)(nil)

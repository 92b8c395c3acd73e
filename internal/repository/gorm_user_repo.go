package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hamzahxou/api-x/internal/domain"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-based user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user.
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	user.ID = uuid.New().String()

	model := domain.UserToModel(user)
	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			// Two unique columns can collide. The translated sentinel does
			// not say which one, so re-query to disambiguate.
			if _, err := r.GetBySubject(ctx, user.Subject); err == nil {
				return ErrSubjectExists
			}
			return ErrUsernameExists
		}
		return result.Error
	}

	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByID retrieves a user by ID.
func (r *GormUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetBySubject retrieves a user by the external identity provider's subject id.
func (r *GormUserRepository) GetBySubject(ctx context.Context, subject string) (*domain.User, error) {
	return r.getOne(ctx, "subject = ?", subject)
}

// GetByUsername retrieves a user by username.
func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "username = ?", username)
}

func (r *GormUserRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var model domain.UserModel
	result := r.db.WithContext(ctx).First(&model, query, arg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// Update updates the mutable profile fields of a user.
func (r *GormUserRepository) Update(ctx context.Context, user *domain.User) error {
	result := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"first_name":      user.FirstName,
			"last_name":       user.LastName,
			"profile_picture": user.ProfilePicture,
			"bio":             user.Bio,
			"location":        user.Location,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	var updated domain.UserModel
	if err := r.db.WithContext(ctx).First(&updated, "id = ?", user.ID).Error; err != nil {
		return err
	}
	user.UpdatedAt = updated.UpdatedAt
	return nil
}

var _ UserRepository = (*GormUserRepository)(nil)

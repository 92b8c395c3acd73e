package service

import (
	"context"
	"errors"
	"time"

	"github.com/Hamzahxou/api-x/internal/audit"
	"github.com/Hamzahxou/api-x/internal/cache"
	"github.com/Hamzahxou/api-x/internal/domain"
	"github.com/Hamzahxou/api-x/internal/events"
	"github.com/Hamzahxou/api-x/internal/repository"
	"github.com/Hamzahxou/api-x/pkg/log"
)

var _ UserService = (*userServiceImpl)(nil)

// userServiceImpl implements UserService.
type userServiceImpl struct {
	users    repository.UserRepository
	follows  repository.FollowRepository
	profiles cache.ProfileCache // nil disables caching
	cacheTTL time.Duration
	fanout   *fanout
}

// NewUserService creates a new user service. profiles may be nil when no
// cache is configured.
func NewUserService(
	users repository.UserRepository,
	follows repository.FollowRepository,
	notifications repository.NotificationRepository,
	publisher events.Publisher,
	profiles cache.ProfileCache,
	ttl time.Duration,
) UserService {
	return &userServiceImpl{
		users:    users,
		follows:  follows,
		profiles: profiles,
		cacheTTL: ttl,
		fanout:   newFanout(notifications, publisher),
	}
}

// resolve maps an external subject id to the local user record.
func (s *userServiceImpl) resolve(ctx context.Context, subject string) (*domain.User, error) {
	user, err := s.users.GetBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Sync materializes a local profile for the authenticated subject. The
// upsert is idempotent: an existing profile is returned unchanged.
func (s *userServiceImpl) Sync(ctx context.Context, subject string, req *domain.SyncUserRequest) (*domain.UserResponse, bool, error) {
	l := log.Ctx(ctx)

	existing, err := s.users.GetBySubject(ctx, subject)
	if err == nil {
		resp, rerr := s.toResponse(ctx, existing)
		return resp, false, rerr
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		l.Error().Err(err).Msg("failed to look up subject during sync")
		return nil, false, err
	}

	user := &domain.User{
		Subject:        subject,
		Username:       req.Username,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		ProfilePicture: req.ProfilePicture,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrSubjectExists) {
			// Lost a race with a concurrent sync; the profile exists now.
			existing, gerr := s.users.GetBySubject(ctx, subject)
			if gerr != nil {
				return nil, false, gerr
			}
			resp, rerr := s.toResponse(ctx, existing)
			return resp, false, rerr
		}
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, false, ErrUsernameTaken
		}
		l.Error().Err(err).Msg("failed to create user during sync")
		return nil, false, err
	}

	audit.Log(ctx, audit.ActionSyncUser, user.ID, "user profile created from identity provider")

	resp, err := s.toResponse(ctx, user)
	return resp, true, err
}

// GetMe returns the caller's own profile.
func (s *userServiceImpl) GetMe(ctx context.Context, subject string) (*domain.UserResponse, error) {
	user, err := s.resolve(ctx, subject)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, user)
}

// GetProfile returns a public profile by username, consulting the cache
// first.
func (s *userServiceImpl) GetProfile(ctx context.Context, username string) (*domain.UserResponse, error) {
	l := log.Ctx(ctx)

	if s.profiles != nil {
		key := s.profiles.BuildKeyByUsername(username)
		if cached, err := s.profiles.Get(ctx, key); err == nil {
			return &cached.User, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			l.Warn().Err(err).Str(log.FieldUsername, username).Msg("profile cache read failed")
		}
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Str(log.FieldUsername, username).Msg("failed to get user by username")
		return nil, err
	}

	resp, err := s.toResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.profiles != nil {
		key := s.profiles.BuildKeyByUsername(username)
		if err := s.profiles.Set(ctx, key, &cache.ProfileCacheResult{User: *resp}, s.cacheTTL); err != nil {
			l.Warn().Err(err).Str(log.FieldUsername, username).Msg("profile cache write failed")
		}
	}

	return resp, nil
}

// UpdateProfile applies a partial update to the caller's profile.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, subject string, req *domain.UpdateProfileRequest) (*domain.UserResponse, error) {
	l := log.Ctx(ctx)

	user, err := s.resolve(ctx, subject)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = *req.ProfilePicture
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Location != nil {
		user.Location = *req.Location
	}

	if err := s.users.Update(ctx, user); err != nil {
		l.Error().Err(err).Str(log.FieldUserID, user.ID).Msg("failed to update profile")
		return nil, err
	}

	s.invalidateProfile(ctx, user.Username)
	audit.Log(ctx, audit.ActionUpdateProfile, user.ID, "profile updated")

	return s.toResponse(ctx, user)
}

// Follow toggles the follow edge from the caller to targetUserID.
// Notification fan-out happens on the follow transition only; unfollow is
// silent, and a later re-follow notifies again.
func (s *userServiceImpl) Follow(ctx context.Context, subject, targetUserID string) (domain.Toggle, error) {
	l := log.Ctx(ctx)

	actor, err := s.resolve(ctx, subject)
	if err != nil {
		return domain.ToggledOff, err
	}

	if actor.ID == targetUserID {
		return domain.ToggledOff, ErrSelfFollow
	}

	target, err := s.users.GetByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.ToggledOff, ErrUserNotFound
		}
		return domain.ToggledOff, err
	}

	outcome, err := s.follows.Toggle(ctx, actor.ID, target.ID)
	if err != nil {
		l.Error().Err(err).
			Str(log.FieldUserID, actor.ID).
			Str(audit.FieldTargetID, target.ID).
			Msg("failed to toggle follow edge")
		return domain.ToggledOff, err
	}

	if outcome.On() {
		if err := s.fanout.emit(ctx, domain.NotificationFollow, actor.ID, target.ID, nil, nil); err != nil {
			return outcome, err
		}
	}

	s.invalidateProfile(ctx, actor.Username)
	s.invalidateProfile(ctx, target.Username)
	audit.LogWithTarget(ctx, audit.ActionFollowToggle, actor.ID, target.ID, "follow edge toggled")

	return outcome, nil
}

func (s *userServiceImpl) invalidateProfile(ctx context.Context, username string) {
	if s.profiles == nil {
		return
	}
	if err := s.profiles.Delete(ctx, s.profiles.BuildKeyByUsername(username)); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldUsername, username).Msg("profile cache invalidation failed")
	}
}

func (s *userServiceImpl) toResponse(ctx context.Context, user *domain.User) (*domain.UserResponse, error) {
	followers, err := s.follows.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse(followers, following)
	return &resp, nil
}

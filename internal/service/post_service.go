package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/Hamzahxou/api-x/internal/audit"
	"github.com/Hamzahxou/api-x/internal/domain"
	"github.com/Hamzahxou/api-x/internal/events"
	"github.com/Hamzahxou/api-x/internal/repository"
	"github.com/Hamzahxou/api-x/pkg/log"
)

var _ PostService = (*postServiceImpl)(nil)

// postServiceImpl implements PostService.
type postServiceImpl struct {
	posts  repository.PostRepository
	users  repository.UserRepository
	images ImageStore // nil disables image uploads
	fanout *fanout
}

// NewPostService creates a new post service. images may be nil when no
// storage backend is configured.
func NewPostService(
	posts repository.PostRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	publisher events.Publisher,
	images ImageStore,
) PostService {
	return &postServiceImpl{
		posts:  posts,
		users:  users,
		images: images,
		fanout: newFanout(notifications, publisher),
	}
}

func (s *postServiceImpl) resolve(ctx context.Context, subject string) (*domain.User, error) {
	user, err := s.users.GetBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListPosts returns the global feed, newest-first.
func (s *postServiceImpl) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

// GetPost returns a single post with its author, like set and comments.
func (s *postServiceImpl) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// ListUserPosts returns a user's posts, newest-first. The user is looked up
// by username.
func (s *postServiceImpl) ListUserPosts(ctx context.Context, username string) ([]domain.Post, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.posts.ListByUser(ctx, user.ID)
}

// CreatePost creates a post for the caller. At least one of content and
// image must be present. The image, when given, is normalized and stored
// before the post row is written.
func (s *postServiceImpl) CreatePost(ctx context.Context, subject, content string, image io.Reader) (*domain.Post, error) {
	l := log.Ctx(ctx)

	user, err := s.resolve(ctx, subject)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" && image == nil {
		return nil, ErrEmptyPost
	}

	post := &domain.Post{
		UserID:  user.ID,
		Content: content,
	}

	if image != nil {
		if s.images == nil {
			return nil, ErrImageUpload
		}
		url, err := s.images.StorePostImage(ctx, user.ID, image)
		if err != nil {
			l.Error().Err(err).Str(log.FieldUserID, user.ID).Msg("failed to store post image")
			return nil, ErrImageUpload
		}
		post.Image = url
	}

	if err := s.posts.Create(ctx, post); err != nil {
		l.Error().Err(err).Str(log.FieldUserID, user.ID).Msg("failed to create post")
		return nil, err
	}

	audit.LogWithTarget(ctx, audit.ActionCreatePost, user.ID, post.ID, "post created")

	// Re-read so the response carries the populated author summary.
	return s.posts.GetByID(ctx, post.ID)
}

// DeletePost deletes the caller's post along with its comments, likes and
// any notifications referencing them. Only the author may delete.
func (s *postServiceImpl) DeletePost(ctx context.Context, subject, postID string) error {
	l := log.Ctx(ctx)

	user, err := s.resolve(ctx, subject)
	if err != nil {
		return err
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if post.UserID != user.ID {
		return ErrNotPostOwner
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		l.Error().Err(err).Str(log.FieldPostID, postID).Msg("failed to delete post")
		return err
	}

	audit.LogWithTarget(ctx, audit.ActionDeletePost, user.ID, postID, "post deleted")
	return nil
}

// ToggleLike flips the caller's like on a post. The post owner is notified
// on the like transition only, and never about their own like.
func (s *postServiceImpl) ToggleLike(ctx context.Context, subject, postID string) (domain.Toggle, error) {
	l := log.Ctx(ctx)

	user, err := s.resolve(ctx, subject)
	if err != nil {
		return domain.ToggledOff, err
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return domain.ToggledOff, ErrPostNotFound
		}
		return domain.ToggledOff, err
	}

	outcome, err := s.posts.ToggleLike(ctx, postID, user.ID)
	if err != nil {
		l.Error().Err(err).
			Str(log.FieldPostID, postID).
			Str(log.FieldUserID, user.ID).
			Msg("failed to toggle like")
		return domain.ToggledOff, err
	}

	if outcome.On() {
		if err := s.fanout.emit(ctx, domain.NotificationLike, user.ID, post.UserID, &post.ID, nil); err != nil {
			return outcome, err
		}
	}

	audit.LogWithTarget(ctx, audit.ActionLikeToggle, user.ID, postID, "like toggled")
	return outcome, nil
}

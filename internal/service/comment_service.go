package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Hamzahxou/api-x/internal/audit"
	"github.com/Hamzahxou/api-x/internal/domain"
	"github.com/Hamzahxou/api-x/internal/events"
	"github.com/Hamzahxou/api-x/internal/repository"
	"github.com/Hamzahxou/api-x/pkg/log"
)

var _ CommentService = (*commentServiceImpl)(nil)

// commentServiceImpl implements CommentService.
type commentServiceImpl struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	users    repository.UserRepository
	fanout   *fanout
}

// NewCommentService creates a new comment service.
func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	publisher events.Publisher,
) CommentService {
	return &commentServiceImpl{
		comments: comments,
		posts:    posts,
		users:    users,
		fanout:   newFanout(notifications, publisher),
	}
}

func (s *commentServiceImpl) resolve(ctx context.Context, subject string) (*domain.User, error) {
	user, err := s.users.GetBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListByPost returns a post's comments, newest-first. An unknown post id
// yields an empty list rather than an error.
func (s *commentServiceImpl) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	return s.comments.ListByPost(ctx, postID)
}

// Create attaches a comment to a post and notifies the post owner, unless
// the commenter is the owner.
func (s *commentServiceImpl) Create(ctx context.Context, subject, postID, content string) (*domain.Comment, error) {
	l := log.Ctx(ctx)

	user, err := s.resolve(ctx, subject)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &domain.Comment{
		UserID:  user.ID,
		PostID:  post.ID,
		Content: content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		l.Error().Err(err).Str(log.FieldPostID, postID).Msg("failed to create comment")
		return nil, err
	}

	if err := s.fanout.emit(ctx, domain.NotificationComment, user.ID, post.UserID, &post.ID, &comment.ID); err != nil {
		return nil, err
	}

	audit.LogWithTarget(ctx, audit.ActionCreateComment, user.ID, comment.ID, "comment created")

	// Re-read so the response carries the populated author summary.
	return s.comments.GetByID(ctx, comment.ID)
}

// Delete removes the caller's comment and notifications referencing it.
// Only the comment author may delete.
func (s *commentServiceImpl) Delete(ctx context.Context, subject, commentID string) error {
	l := log.Ctx(ctx)

	user, err := s.resolve(ctx, subject)
	if err != nil {
		return err
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != user.ID {
		return ErrNotCommentOwner
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		l.Error().Err(err).Str(log.FieldCommentID, commentID).Msg("failed to delete comment")
		return err
	}

	audit.LogWithTarget(ctx, audit.ActionDeleteComment, user.ID, commentID, "comment deleted")
	return nil
}

package repository

import (
	"context"
	"errors"

	"github.com/Hamzahxou/api-x/internal/domain"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameExists       = errors.New("username already exists")
	ErrSubjectExists        = errors.New("subject already exists")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// UserRepository defines the interface for user persistence. Users are never
// deleted by this system.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetBySubject(ctx context.Context, subject string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// FollowRepository manages the directed follow relation.
type FollowRepository interface {
	// Toggle flips the follow edge from followerID to followingID and
	// reports which transition happened.
	Toggle(ctx context.Context, followerID, followingID string) (domain.Toggle, error)
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
}

// PostRepository defines the interface for post persistence, including the
// embedded like set.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	// GetByID returns the post populated with author summary, like user ids
	// and comments (with author summaries) in insertion order.
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns all posts newest-first, populated as in GetByID.
	List(ctx context.Context) ([]domain.Post, error)
	// ListByUser returns the user's posts newest-first, populated as in GetByID.
	ListByUser(ctx context.Context, userID string) ([]domain.Post, error)
	// Delete removes the post, its comments, its likes, and notifications
	// referencing any of them, in one transaction.
	Delete(ctx context.Context, postID string) error
	// ToggleLike flips userID's membership in the post's like set and
	// reports which transition happened.
	ToggleLike(ctx context.Context, postID, userID string) (domain.Toggle, error)
}

// CommentRepository defines the interface for comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	// ListByPost returns the post's comments newest-first with author summaries.
	ListByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	// Delete removes the comment and notifications referencing it.
	Delete(ctx context.Context, commentID string) error
}

// NotificationRepository defines the interface for notification persistence.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// ListByRecipient returns the recipient's notifications newest-first,
	// populated with sender summary and referenced post/comment.
	ListByRecipient(ctx context.Context, userID string) ([]domain.Notification, error)
	// DeleteForRecipient removes a notification addressed to recipientID.
	// A notification that does not exist or is addressed to someone else
	// yields ErrNotificationNotFound.
	DeleteForRecipient(ctx context.Context, id, recipientID string) error
}

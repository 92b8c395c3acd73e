package service

import (
	"context"
	"errors"
	"io"

	"github.com/Hamzahxou/api-x/internal/domain"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrSelfFollow           = errors.New("users cannot follow themselves")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrEmptyPost            = errors.New("content or image is required")
	ErrEmptyComment         = errors.New("comment content is required")
	ErrNotPostOwner         = errors.New("not the post owner")
	ErrNotCommentOwner      = errors.New("not the comment owner")
	ErrImageUpload          = errors.New("failed to store image")
)

// ImageStore normalizes and stores an uploaded post image, returning its
// canonical URL. Implemented by internal/media.
type ImageStore interface {
	StorePostImage(ctx context.Context, userID string, r io.Reader) (string, error)
}

// UserService defines user-graph business logic. Every authenticated
// operation resolves the external subject to a local user first.
type UserService interface {
	// Sync is an idempotent upsert keyed by the external subject id.
	// The returned bool reports whether a profile was created.
	Sync(ctx context.Context, subject string, req *domain.SyncUserRequest) (*domain.UserResponse, bool, error)
	GetMe(ctx context.Context, subject string) (*domain.UserResponse, error)
	GetProfile(ctx context.Context, username string) (*domain.UserResponse, error)
	UpdateProfile(ctx context.Context, subject string, req *domain.UpdateProfileRequest) (*domain.UserResponse, error)
	// Follow toggles the follow edge from the caller to targetUserID. A
	// follow notification is emitted on the follow transition only.
	Follow(ctx context.Context, subject, targetUserID string) (domain.Toggle, error)
}

// PostService defines post business logic, including the like set.
type PostService interface {
	ListPosts(ctx context.Context) ([]domain.Post, error)
	GetPost(ctx context.Context, postID string) (*domain.Post, error)
	ListUserPosts(ctx context.Context, username string) ([]domain.Post, error)
	// CreatePost requires content and/or an image. A nil image reader means
	// no image was uploaded.
	CreatePost(ctx context.Context, subject, content string, image io.Reader) (*domain.Post, error)
	DeletePost(ctx context.Context, subject, postID string) error
	// ToggleLike flips the caller's membership in the post's like set. A
	// like notification is emitted on the like transition only, and never
	// for the post's own author.
	ToggleLike(ctx context.Context, subject, postID string) (domain.Toggle, error)
}

// CommentService defines comment business logic.
type CommentService interface {
	ListByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	// Create attaches a comment to a post. A comment notification is
	// emitted to the post owner unless the commenter is the owner.
	Create(ctx context.Context, subject, postID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, subject, commentID string) error
}

// NotificationService defines notification business logic.
type NotificationService interface {
	List(ctx context.Context, subject string) ([]domain.Notification, error)
	Delete(ctx context.Context, subject, notificationID string) error
}

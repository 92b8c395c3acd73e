package domain

import (
	"time"
)

// NotificationType identifies the action that produced a notification.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
)

// PostRef is the compact post representation embedded in a notification.
type PostRef struct {
	ID      string `json:"id"`
	Content string `json:"content,omitempty"`
	Image   string `json:"image,omitempty"`
}

// CommentRef is the compact comment representation embedded in a notification.
type CommentRef struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Notification is a fan-out record addressed to a single recipient.
// Self-actions never produce one: FromUserID != ToUserID always holds.
type Notification struct {
	ID         string           `json:"id"`
	FromUserID string           `json:"-"`
	ToUserID   string           `json:"-"`
	Type       NotificationType `json:"type"`
	PostID     *string          `json:"-"`
	CommentID  *string          `json:"-"`
	CreatedAt  time.Time        `json:"created_at"`

	From    *AuthorSummary `json:"from,omitempty"`
	Post    *PostRef       `json:"post,omitempty"`
	Comment *CommentRef    `json:"comment,omitempty"`
}

package domain

import (
	"time"
)

// Post represents a feed post. Comments are kept in insertion order; the
// like set is rendered as the ids of users who liked the post.
type Post struct {
	ID          string         `json:"id"`
	UserID      string         `json:"-"`
	Content     string         `json:"content,omitempty"`
	Image       string         `json:"image,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	Author      *AuthorSummary `json:"user,omitempty"`
	LikeUserIDs []string       `json:"likes"`
	Comments    []Comment      `json:"comments"`
}

// Comment represents a comment attached to a post.
type Comment struct {
	ID        string         `json:"id"`
	UserID    string         `json:"-"`
	PostID    string         `json:"post_id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	Author    *AuthorSummary `json:"user,omitempty"`
}

// CreateCommentRequest is the body for creating a comment.
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

package domain

import (
	"time"
)

// UserModel is the GORM model for the users table. The subject column holds
// the external identity provider's key for the user; it is the only link
// between a session token and a local profile.
type UserModel struct {
	ID             string    `gorm:"type:varchar(36);primaryKey"`
	Subject        string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Username       string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	FirstName      string    `gorm:"type:varchar(100)"`
	LastName       string    `gorm:"type:varchar(100)"`
	ProfilePicture string    `gorm:"type:varchar(512)"`
	Bio            string    `gorm:"type:varchar(500)"`
	Location       string    `gorm:"type:varchar(100)"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

// ToDomain converts UserModel to domain User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:             m.ID,
		Subject:        m.Subject,
		Username:       m.Username,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		ProfilePicture: m.ProfilePicture,
		Bio:            m.Bio,
		Location:       m.Location,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// UserToModel converts domain User to UserModel.
func UserToModel(u *User) *UserModel {
	return &UserModel{
		ID:             u.ID,
		Subject:        u.Subject,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		Location:       u.Location,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// FollowModel is the GORM model for the follows table. A row is the directed
// follow edge; the composite unique index gives the edge set semantics.
type FollowModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	FollowerID  string    `gorm:"column:follower_id;type:varchar(36);not null;uniqueIndex:idx_follow_edge"`
	FollowingID string    `gorm:"column:following_id;type:varchar(36);not null;uniqueIndex:idx_follow_edge;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (FollowModel) TableName() string { return "follows" }

// PostModel is the GORM model for the posts table. The owner is immutable
// after creation.
type PostModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	UserID    string    `gorm:"type:varchar(36);not null;index"`
	Content   string    `gorm:"type:text"`
	Image     string    `gorm:"type:varchar(512)"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	User     UserModel       `gorm:"foreignKey:UserID"`
	Comments []CommentModel  `gorm:"foreignKey:PostID"`
	Likes    []PostLikeModel `gorm:"foreignKey:PostID"`
}

func (PostModel) TableName() string { return "posts" }

// PostLikeModel is the GORM model for the post_likes table. The composite
// unique index makes the like set a set.
type PostLikeModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PostID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_post_like"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_post_like"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PostLikeModel) TableName() string { return "post_likes" }

// CommentModel is the GORM model for the comments table. The parent post
// reference is immutable.
type CommentModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	UserID    string    `gorm:"type:varchar(36);not null;index"`
	PostID    string    `gorm:"type:varchar(36);not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User UserModel `gorm:"foreignKey:UserID"`
}

func (CommentModel) TableName() string { return "comments" }

// ToDomain converts CommentModel to domain Comment.
func (m *CommentModel) ToDomain() *Comment {
	c := &Comment{
		ID:        m.ID,
		UserID:    m.UserID,
		PostID:    m.PostID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if m.User.ID != "" {
		c.Author = m.User.ToDomain().Summary()
	}
	return c
}

// NotificationModel is the GORM model for the notifications table. PostID
// and CommentID are nullable; only the kinds that reference content set them.
type NotificationModel struct {
	ID         string    `gorm:"type:varchar(36);primaryKey"`
	FromUserID string    `gorm:"type:varchar(36);not null"`
	ToUserID   string    `gorm:"type:varchar(36);not null;index"`
	Type       string    `gorm:"type:varchar(16);not null"`
	PostID     *string   `gorm:"type:varchar(36);index"`
	CommentID  *string   `gorm:"type:varchar(36);index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`

	From    UserModel     `gorm:"foreignKey:FromUserID"`
	Post    *PostModel    `gorm:"foreignKey:PostID"`
	Comment *CommentModel `gorm:"foreignKey:CommentID"`
}

func (NotificationModel) TableName() string { return "notifications" }

// ToDomain converts NotificationModel to domain Notification.
func (m *NotificationModel) ToDomain() *Notification {
	n := &Notification{
		ID:         m.ID,
		FromUserID: m.FromUserID,
		ToUserID:   m.ToUserID,
		Type:       NotificationType(m.Type),
		PostID:     m.PostID,
		CommentID:  m.CommentID,
		CreatedAt:  m.CreatedAt,
	}
	if m.From.ID != "" {
		n.From = m.From.ToDomain().Summary()
	}
	if m.Post != nil {
		n.Post = &PostRef{ID: m.Post.ID, Content: m.Post.Content, Image: m.Post.Image}
	}
	if m.Comment != nil {
		n.Comment = &CommentRef{ID: m.Comment.ID, Content: m.Comment.Content}
	}
	return n
}

package domain

import (
	"time"
)

// Toggle is the tagged result of a membership toggle (follow edge, like set).
// It states which transition happened, which is what decides whether a
// notification is emitted.
type Toggle int

const (
	ToggledOff Toggle = iota
	ToggledOn
)

// On reports whether the toggle turned the membership on.
func (t Toggle) On() bool { return t == ToggledOn }

// User represents a local user profile materialized from the external
// identity provider.
type User struct {
	ID             string    `json:"id"`
	Subject        string    `json:"-"`
	Username       string    `json:"username"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Location       string    `json:"location,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AuthorSummary is the compact user representation embedded in posts,
// comments and notifications.
type AuthorSummary struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// Summary returns the compact representation of the user.
func (u *User) Summary() *AuthorSummary {
	return &AuthorSummary{
		ID:             u.ID,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
	}
}

// SyncUserRequest carries the identity provider profile fields used to
// materialize a local profile after external sign-in.
type SyncUserRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=50"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ProfilePicture string `json:"profile_picture"`
}

// UpdateProfileRequest is a partial profile update; nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	ProfilePicture *string `json:"profile_picture"`
	Bio            *string `json:"bio"`
	Location       *string `json:"location"`
}

// UserResponse represents a user in API responses, including follow counts
// derived from the follows table.
type UserResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Location       string    `json:"location,omitempty"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse. Follow counts are populated by
// the service layer.
func (u *User) ToResponse(followers, following int64) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		Location:       u.Location,
		FollowersCount: followers,
		FollowingCount: following,
		CreatedAt:      u.CreatedAt,
	}
}

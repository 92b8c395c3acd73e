package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/Hamzahxou/api-x/internal/service"
	"github.com/Hamzahxou/api-x/pkg/middleware"
	"github.com/Hamzahxou/api-x/pkg/response"
)

// maxImageSize caps uploaded post images at 10 MiB.
const maxImageSize = 10 << 20

// PostHandler handles post HTTP requests.
type PostHandler struct {
	posts service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(posts service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// List handles GET /api/posts.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.ListPosts(c.Request.Context())
	if err != nil {
		response.InternalError(c, "failed to list posts")
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

// Get handles GET /api/posts/:postId.
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.posts.GetPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		response.InternalError(c, "failed to get post")
		return
	}
	response.Success(c, gin.H{"post": post})
}

// ListByUser handles GET /api/posts/user/:username.
func (h *PostHandler) ListByUser(c *gin.Context) {
	posts, err := h.posts.ListUserPosts(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, "failed to list user posts")
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

// Create handles POST /api/posts. The body is multipart form data with an
// optional "content" field and an optional "image" file; at least one must
// be present.
func (h *PostHandler) Create(c *gin.Context) {
	subject := middleware.GetSubject(c)
	content := c.PostForm("content")

	var image io.Reader
	file, err := c.FormFile("image")
	if err == nil {
		if file.Size > maxImageSize {
			response.BadRequest(c, "image too large")
			return
		}
		f, err := file.Open()
		if err != nil {
			response.InternalError(c, "failed to read image")
			return
		}
		defer f.Close()
		image = f
	}

	post, err := h.posts.CreatePost(c.Request.Context(), subject, content, image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyPost):
			response.BadRequest(c, "content or image is required")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "user not found")
		case errors.Is(err, service.ErrImageUpload):
			response.InternalError(c, "failed to store image")
		default:
			response.InternalError(c, "failed to create post")
		}
		return
	}
	response.Created(c, gin.H{"post": post, "message": "post created successfully"})
}

// Delete handles DELETE /api/posts/:postId.
func (h *PostHandler) Delete(c *gin.Context) {
	subject := middleware.GetSubject(c)
	err := h.posts.DeletePost(c.Request.Context(), subject, c.Param("postId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "post not found")
		case errors.Is(err, service.ErrNotPostOwner):
			response.Forbidden(c, "only the author can delete a post")
		default:
			response.InternalError(c, "failed to delete post")
		}
		return
	}
	response.Success(c, gin.H{"message": "post deleted successfully"})
}

// ToggleLike handles POST /api/posts/:postId/like.
func (h *PostHandler) ToggleLike(c *gin.Context) {
	subject := middleware.GetSubject(c)
	outcome, err := h.posts.ToggleLike(c.Request.Context(), subject, c.Param("postId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			response.NotFound(c, "post not found")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "user not found")
		default:
			response.InternalError(c, "failed to toggle like")
		}
		return
	}

	msg := "post unliked successfully"
	if outcome.On() {
		msg = "post liked successfully"
	}
	response.Success(c, gin.H{"message": msg})
}

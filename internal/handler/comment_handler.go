package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Hamzahxou/api-x/internal/domain"
	"github.com/Hamzahxou/api-x/internal/service"
	"github.com/Hamzahxou/api-x/pkg/middleware"
	"github.com/Hamzahxou/api-x/pkg/response"
)

// CommentHandler handles comment HTTP requests.
type CommentHandler struct {
	comments service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(comments service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// ListByPost handles GET /api/comments/post/:postId. An unknown post reads
// as an empty list.
func (h *CommentHandler) ListByPost(c *gin.Context) {
	comments, err := h.comments.ListByPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		response.InternalError(c, "failed to list comments")
		return
	}
	response.Success(c, gin.H{"comments": comments})
}

// Create handles POST /api/comments/post/:postId.
func (h *CommentHandler) Create(c *gin.Context) {
	var req domain.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "comment content is required")
		return
	}

	subject := middleware.GetSubject(c)
	comment, err := h.comments.Create(c.Request.Context(), subject, c.Param("postId"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyComment):
			response.BadRequest(c, "comment content is required")
		case errors.Is(err, service.ErrPostNotFound):
			response.NotFound(c, "post not found")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "user not found")
		default:
			response.InternalError(c, "failed to create comment")
		}
		return
	}
	response.Created(c, gin.H{"comment": comment, "message": "comment created successfully"})
}

// Delete handles DELETE /api/comments/:commentId.
func (h *CommentHandler) Delete(c *gin.Context) {
	subject := middleware.GetSubject(c)
	err := h.comments.Delete(c.Request.Context(), subject, c.Param("commentId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound), errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "comment not found")
		case errors.Is(err, service.ErrNotCommentOwner):
			response.Forbidden(c, "only the author can delete a comment")
		default:
			response.InternalError(c, "failed to delete comment")
		}
		return
	}
	response.Success(c, gin.H{"message": "comment deleted successfully"})
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamzahxou/api-x/internal/domain"
)

func TestCreateCommentNotifiesPostOwner(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.sync(ctx, "ext-1", "alice")
	bob := e.sync(ctx, "ext-2", "bob")

	post, err := e.postSvc.CreatePost(ctx, "ext-1", "hello", nil)
	require.NoError(t, err)

	comment, err := e.commentSvc.Create(ctx, "ext-2", post.ID, "hi there")
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
	require.NotNil(t, comment.Author)
	assert.Equal(t, bob.ID, comment.Author.ID)

	got, err := e.postSvc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, comment.ID, got.Comments[0].ID)

	notifications, err := e.notificationSvc.List(ctx, "ext-1")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotificationComment, notifications[0].Type)
	require.NotNil(t, notifications[0].Comment)
	assert.Equal(t, comment.ID, notifications[0].Comment.ID)
}

func TestCreateCommentOnOwnPostStaysSilent(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.sync(ctx, "ext-1", "alice")

	post, err := e.postSvc.CreatePost(ctx, "ext-1", "hello", nil)
	require.NoError(t, err)

	_, err = e.commentSvc.Create(ctx, "ext-1", post.ID, "replying to myself")
	require.NoError(t, err)

	notifications, err := e.notificationSvc.List(ctx, "ext-1")
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestCreateCommentRejectsEmptyContent(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.sync(ctx, "ext-1", "alice")

	post, err := e.postSvc.CreatePost(ctx, "ext-1", "hello", nil)
	require.NoError(t, err)

	_, err = e.commentSvc.Create(ctx, "ext-1", post.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)

	comments, err := e.commentSvc.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCreateCommentUnknownPost(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.sync(ctx, "ext-1", "alice")

	_, err := e.commentSvc.Create(ctx, "ext-1", "no-such-post", "hi")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListCommentsUnknownPostIsEmpty(t *testing.T) {
	e := newEnv()

	comments, err := e.commentSvc.ListByPost(context.Background(), "no-such-post")
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestListCommentsNewestFirst(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.sync(ctx, "ext-1", "alice")

	post, err := e.postSvc.CreatePost(ctx, "ext-1", "hello", nil)
	require.NoError(t, err)

	first, err := e.commentSvc.Create(ctx, "ext-1", post.ID, "first")
	require.NoError(t, err)
	second, err := e.commentSvc.Create(ctx, "ext-1", post.ID, "second")
	require.NoError(t, err)

	comments, err := e.commentSvc.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, second.ID, comments[0].ID)
	assert.Equal(t, first.ID, comments[1].ID)
}

func TestDeleteCommentOnlyByOwner(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.sync(ctx, "ext-1", "alice")
	e.sync(ctx, "ext-2", "bob")

	post, err := e.postSvc.CreatePost(ctx, "ext-1", "hello", nil)
	require.NoError(t, err)
	comment, err := e.commentSvc.Create(ctx, "ext-2", post.ID, "hi")
	require.NoError(t, err)

	err = e.commentSvc.Delete(ctx, "ext-1", comment.ID)
	assert.ErrorIs(t, err, ErrNotCommentOwner)

	require.NoError(t, e.commentSvc.Delete(ctx, "ext-2", comment.ID))

	comments, err := e.commentSvc.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// The comment notification was removed along with the comment.
	notifications, err := e.notificationSvc.List(ctx, "ext-1")
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestDeleteCommentUnknown(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.sync(ctx, "ext-1", "alice")

	err := e.commentSvc.Delete(ctx, "ext-1", "no-such-comment")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

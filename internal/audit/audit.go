package audit

import (
	"context"

	"github.com/Hamzahxou/api-x/pkg/log"
)

// Audit actions.
const (
	ActionSyncUser           = "user.sync"
	ActionUpdateProfile      = "user.update_profile"
	ActionFollowToggle       = "user.follow_toggle"
	ActionCreatePost         = "post.create"
	ActionDeletePost         = "post.delete"
	ActionLikeToggle         = "post.like_toggle"
	ActionCreateComment      = "comment.create"
	ActionDeleteComment      = "comment.delete"
	ActionDeleteNotification = "notification.delete"
)

// Field constants for audit entries.
const (
	FieldAction   = "action"
	FieldTargetID = "target_id"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action string, userID string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Msg(msg)
}

// LogWithTarget emits an audit log entry including the acted-on entity id.
func LogWithTarget(ctx context.Context, action string, userID string, targetID string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Str(FieldTargetID, targetID).
		Msg(msg)
}

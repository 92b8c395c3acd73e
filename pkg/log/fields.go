package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor (matches pkg/middleware keys)
	FieldSubject = "subject"
	FieldUserID  = "user_id"

	// Domain entities
	FieldPostID         = "post_id"
	FieldCommentID      = "comment_id"
	FieldNotificationID = "notification_id"
	FieldUsername       = "username"

	// Service
	FieldService = "service"

	// Log type (for audit log)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)

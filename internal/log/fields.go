package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"

	FieldAction   = "action"
	FieldRange    = "range"
	FieldMemberID = "member_id"
	FieldMonth    = "month"
	FieldAmount   = "amount"
	FieldKey      = "payment_key"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStore   = "store"
	ComponentBackend = "backend"
	ComponentAuth    = "auth"
	ComponentAMQP    = "amqp"
	ComponentAudit   = "audit"
	ComponentWorker  = "worker"
)
